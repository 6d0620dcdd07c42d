package authControllers

import (
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sellerhub/marketplace-api/email"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/sellerhub/marketplace-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// -------- Request / Response Structs --------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	Email            string `json:"email" binding:"required,email"`
	VerificationCode string `json:"verification_code" binding:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RequestLoginOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type LoginWithOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

// -------- Helpers --------

func issueJWT(userID, userEmail string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": userEmail,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func randomDigits(length int) string {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the platform source is broken
			n = big.NewInt(int64(time.Now().UnixNano() % 10))
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits)
}

func generateVerificationCode() string {
	length := 6
	if v := os.Getenv("EMAIL_VERIFICATION_CODE_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			length = n
		}
	}
	return randomDigits(length)
}

func generateLoginOtp() string {
	return randomDigits(6)
}

func loginOtpTTL() time.Duration {
	minutes := 10
	if v := os.Getenv("LOGIN_OTP_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			minutes = n
		}
	}
	return time.Duration(minutes) * time.Minute
}

// -------- Core Logic --------

// Register creates an unverified account and emails a verification code. A
// failed email send does not undo the registration.
func Register(db *gorm.DB, sender email.Sender, req RegisterRequest) (*models.User, error) {
	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, utils.BadRequestf("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	code := generateVerificationCode()
	expires := time.Now().Add(24 * time.Hour)

	user := models.User{
		Email:                    req.Email,
		Password:                 string(hashed),
		Name:                     req.Name,
		Phone:                    req.Phone,
		Location:                 req.Location,
		EmailVerificationCode:    &code,
		EmailVerificationExpires: &expires,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	if err := sender.SendVerificationEmail(user.Email, code, user.Name); err != nil {
		// User is already created, keep going
		log.Printf("❌ Failed to send verification email to %s: %v", user.Email, err)
	}

	return &user, nil
}

// VerifyEmail checks the emailed code and marks the account verified.
func VerifyEmail(db *gorm.DB, req VerifyEmailRequest) (*AuthResponse, error) {
	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.BadRequestf("user not found")
		}
		return nil, err
	}

	if user.IsEmailVerified {
		return nil, utils.BadRequestf("email is already verified")
	}
	if user.EmailVerificationCode == nil || *user.EmailVerificationCode != req.VerificationCode {
		return nil, utils.BadRequestf("invalid verification code")
	}
	if user.EmailVerificationExpires == nil || user.EmailVerificationExpires.Before(time.Now()) {
		return nil, utils.BadRequestf("verification code has expired")
	}

	updates := map[string]interface{}{
		"is_email_verified":          true,
		"email_verification_code":    nil,
		"email_verification_expires": nil,
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	user.IsEmailVerified = true
	user.EmailVerificationCode = nil
	user.EmailVerificationExpires = nil

	token, err := issueJWT(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{AccessToken: token, User: &user}, nil
}

// ResendVerification issues a fresh code. Here a failed email send is an
// error, the caller explicitly asked for the mail.
func ResendVerification(db *gorm.DB, sender email.Sender, req ResendVerificationRequest) error {
	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.BadRequestf("user not found")
		}
		return err
	}
	if user.IsEmailVerified {
		return utils.BadRequestf("email is already verified")
	}

	code := generateVerificationCode()
	expires := time.Now().Add(24 * time.Hour)
	if err := db.Model(&user).Updates(map[string]interface{}{
		"email_verification_code":    code,
		"email_verification_expires": expires,
	}).Error; err != nil {
		return err
	}

	if err := sender.SendVerificationEmail(user.Email, code, user.Name); err != nil {
		log.Printf("❌ Failed to resend verification email to %s: %v", user.Email, err)
		return utils.BadRequestf("failed to send verification email")
	}
	return nil
}

// Login authenticates with email and password. Unverified accounts cannot
// log in.
func Login(db *gorm.DB, req LoginRequest) (*AuthResponse, error) {
	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.Unauthorizedf("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, utils.Unauthorizedf("invalid credentials")
	}
	if !user.IsEmailVerified {
		return nil, utils.Unauthorizedf("please verify your email before logging in")
	}

	token, err := issueJWT(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{AccessToken: token, User: &user}, nil
}

// RequestLoginOtp emails a one-time numeric login code to a verified user.
func RequestLoginOtp(db *gorm.DB, sender email.Sender, req RequestLoginOtpRequest) error {
	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorizedf("invalid email or OTP")
		}
		return err
	}
	if !user.IsEmailVerified {
		return utils.BadRequestf("please verify your email before using OTP login")
	}

	otp := generateLoginOtp()
	expires := time.Now().Add(loginOtpTTL())
	if err := db.Model(&user).Updates(map[string]interface{}{
		"login_otp_code":    otp,
		"login_otp_expires": expires,
	}).Error; err != nil {
		return err
	}

	if err := sender.SendLoginOtpEmail(user.Email, otp, user.Name); err != nil {
		log.Printf("❌ Failed to send login OTP to %s: %v", user.Email, err)
		return utils.BadRequestf("failed to send login OTP")
	}
	return nil
}

// LoginWithOtp consumes an emailed OTP. The code is single use: it is
// cleared on success and on expiry.
func LoginWithOtp(db *gorm.DB, req LoginWithOtpRequest) (*AuthResponse, error) {
	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.Unauthorizedf("invalid email or OTP")
		}
		return nil, err
	}
	if !user.IsEmailVerified {
		return nil, utils.Unauthorizedf("please verify your email before logging in")
	}
	if user.LoginOtpCode == nil || user.LoginOtpExpires == nil {
		return nil, utils.BadRequestf("no active OTP, please request a new one")
	}

	clear := map[string]interface{}{"login_otp_code": nil, "login_otp_expires": nil}

	if user.LoginOtpExpires.Before(time.Now()) {
		if err := db.Model(&user).Updates(clear).Error; err != nil {
			return nil, err
		}
		return nil, utils.BadRequestf("OTP has expired, please request a new one")
	}
	if *user.LoginOtpCode != req.Otp {
		return nil, utils.BadRequestf("invalid OTP")
	}

	if err := db.Model(&user).Updates(clear).Error; err != nil {
		return nil, err
	}
	user.LoginOtpCode = nil
	user.LoginOtpExpires = nil

	token, err := issueJWT(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{AccessToken: token, User: &user}, nil
}

// -------- Handlers --------

func RegisterHandler(db *gorm.DB, sender email.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		user, err := Register(db, sender, req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Registration successful. Please check your email for verification code.",
			"user":    user,
		})
	}
}

func VerifyEmailHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyEmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		resp, err := VerifyEmail(db, req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      "Email verified successfully",
			"access_token": resp.AccessToken,
			"user":         resp.User,
		})
	}
}

func ResendVerificationHandler(db *gorm.DB, sender email.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResendVerificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := ResendVerification(db, sender, req); err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Verification email sent successfully"})
	}
}

func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		resp, err := Login(db, req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func RequestLoginOtpHandler(db *gorm.DB, sender email.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RequestLoginOtpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := RequestLoginOtp(db, sender, req); err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Login OTP sent to your email address"})
	}
}

func LoginWithOtpHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginWithOtpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		resp, err := LoginWithOtp(db, req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
