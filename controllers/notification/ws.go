package notificationControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sellerhub/marketplace-api/middleware"
	"github.com/sellerhub/marketplace-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[string]map[*websocket.Conn]bool) // user_id -> connections
)

// StreamHandler upgrades to a websocket and keeps the connection registered
// until the client goes away. Dispatch pushes new notifications to every
// connection of a recipient.
func StreamHandler(c *gin.Context) {
	userID := middleware.UserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	if wsClients[userID] == nil {
		wsClients[userID] = make(map[*websocket.Conn]bool)
	}
	wsClients[userID][conn] = true
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients[userID], conn)
			if len(wsClients[userID]) == 0 {
				delete(wsClients, userID)
			}
			wsMu.Unlock()
			break
		}
	}
}

func pushToUser(userID string, notification *models.Notification) {
	data, err := json.Marshal(notification)
	if err != nil {
		return
	}

	wsMu.Lock()
	defer wsMu.Unlock()
	for conn := range wsClients[userID] {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}
