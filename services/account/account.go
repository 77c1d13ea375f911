// Package account implements registration, login, OTP verification and the
// token lifecycle of a user.
package account

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"onboardu/apperror"
	"onboardu/auth"
	"onboardu/database"
	"onboardu/mailer"
	"onboardu/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const msgBadCredentials = "Email or Password is not Valid"

type Service struct {
	db     *gorm.DB
	otp    mailer.OTPSender
	tokens *auth.TokenIssuer
	cost   int
	log    *zap.Logger
}

func NewService(db *gorm.DB, otp mailer.OTPSender, tokens *auth.TokenIssuer, bcryptCost int, log *zap.Logger) *Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{db: db, otp: otp, tokens: tokens, cost: bcryptCost, log: log}
}

type RegisterInput struct {
	Name          string
	Email         string
	ContactNumber string
	Password      string
}

// Session is what a successful register or login hands back.
type Session struct {
	User  models.User
	Token auth.TokenPair
}

// Profile is the public view of a user and its verification flags.
type Profile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	ContactNumber  string `json:"contact_number"`
	IsActive       bool   `json:"is_active"`
	EmailVerified  bool   `json:"email_verified"`
	NumberVerified bool   `json:"number_verified"`
	IsSeller       bool   `json:"is_seller"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the user, its verification flags and its first email OTP
// in one transaction, then sends the code. A failed delivery is logged and
// can be retried through ResendOTP.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)

	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "This field may not be blank."
	}
	if in.Email == "" {
		fields["email"] = "This field may not be blank."
	}
	if in.ContactNumber == "" {
		fields["contact_number"] = "This field may not be blank."
	}
	if in.Password == "" {
		fields["password"] = "This field may not be blank."
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationFields("Enter all details.", fields)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, apperror.Internal("Failed to process your request!", err)
	}

	user := models.User{
		Name:          in.Name,
		Email:         in.Email,
		ContactNumber: in.ContactNumber,
		Password:      string(hashed),
		IsActive:      true,
	}
	code := s.otp.GenerateOTP()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.UserDetails{UserID: user.ID}).Error; err != nil {
			return err
		}
		return tx.Create(&models.OTPVerification{
			UserID:      user.ID,
			Email:       user.Email,
			PhoneNumber: user.ContactNumber,
			OTP:         code,
		}).Error
	})
	if err != nil {
		if database.IsDuplicate(err) {
			return nil, apperror.Conflict(apperror.CodeInvalid, "Email is already registered.")
		}
		return nil, apperror.Internal("Failed to register user!", err)
	}

	s.deliver(ctx, user, code, mailer.PurposeEmail)

	pair, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperror.Internal("Failed to issue token!", err)
	}
	return &Session{User: user, Token: pair}, nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil && !database.IsNotFound(err) {
		return nil, apperror.Internal("Failed to process your request!", err)
	}
	if err != nil || !user.IsActive {
		return nil, apperror.Unauthorized(msgBadCredentials)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperror.Unauthorized(msgBadCredentials)
	}

	pair, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperror.Internal("Failed to issue token!", err)
	}
	return &Session{User: user, Token: pair}, nil
}

func otpMatches(stored, submitted string) bool {
	return stored != "" && subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

// VerifyOTP checks code against the stored code for purpose. "gst" verifies
// the seller's GST claim and makes the user a seller; any other purpose
// verifies the email address. Flags change together or not at all.
func (s *Service) VerifyOTP(ctx context.Context, userID uint, purpose, code string) error {
	code = strings.TrimSpace(code)
	purpose = strings.TrimSpace(purpose)
	if code == "" {
		return apperror.Validation(apperror.CodeInvalid, "Enter otp.")
	}
	if purpose == "" {
		return apperror.Validation(apperror.CodeInvalid, "Submit which otp should verify.")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if mailer.Purpose(purpose) == mailer.PurposeGST {
			return verifyGST(tx, userID, code)
		}
		return verifyEmail(tx, userID, code)
	})
}

func verifyGST(tx *gorm.DB, userID uint, code string) error {
	var gst models.SellerGST
	if err := tx.Where("user_id = ?", userID).First(&gst).Error; err != nil {
		if database.IsNotFound(err) {
			return apperror.NotFound(apperror.CodeInvalid, "GST details not found.")
		}
		return apperror.Internal("Failed to verify otp!", err)
	}
	if !otpMatches(gst.OTP, code) {
		return apperror.Validation(apperror.CodeInvalid, "Enter correct otp.")
	}

	if err := tx.Model(&gst).Updates(map[string]interface{}{
		"is_otp_used":  true,
		"gst_verified": true,
	}).Error; err != nil {
		return apperror.Internal("Failed to verify otp!", err)
	}
	return markDetails(tx, userID, "is_seller")
}

func verifyEmail(tx *gorm.DB, userID uint, code string) error {
	var record models.OTPVerification
	if err := tx.Where("user_id = ?", userID).First(&record).Error; err != nil {
		if database.IsNotFound(err) {
			return apperror.NotFound(apperror.CodeInvalid, "OTP not found.")
		}
		return apperror.Internal("Failed to verify otp!", err)
	}
	if !otpMatches(record.OTP, code) {
		return apperror.Validation(apperror.CodeInvalid, "Enter correct otp.")
	}

	if err := tx.Model(&record).Update("is_otp_used", true).Error; err != nil {
		return apperror.Internal("Failed to verify otp!", err)
	}
	return markDetails(tx, userID, "email_verified")
}

func markDetails(tx *gorm.DB, userID uint, column string) error {
	res := tx.Model(&models.UserDetails{}).Where("user_id = ?", userID).Update(column, true)
	if res.Error != nil {
		return apperror.Internal("Failed to verify otp!", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound(apperror.CodeInvalid, "User details not found.")
	}
	return nil
}

// ResendOTP overwrites the stored code for purpose with a fresh one and sends
// it. A GST code can only be resent once GST details were submitted.
func (s *Service) ResendOTP(ctx context.Context, userID uint, purpose string) error {
	user, err := s.user(ctx, userID)
	if err != nil {
		return err
	}
	code := s.otp.GenerateOTP()
	db := s.db.WithContext(ctx)

	switch mailer.Purpose(strings.TrimSpace(purpose)) {
	case mailer.PurposeGST:
		var gst models.SellerGST
		if err := db.Where("user_id = ?", userID).First(&gst).Error; err != nil {
			if database.IsNotFound(err) {
				return apperror.NotFound(apperror.CodeFailed, "Upload GST certificate first.")
			}
			return apperror.Internal("Failed to send otp!", err)
		}
		if gst.GSTNumber == "" {
			return apperror.Validation(apperror.CodeFailed, "Submit GST details first.")
		}
		if err := db.Model(&gst).Updates(map[string]interface{}{"otp": code, "is_otp_used": false}).Error; err != nil {
			return apperror.Internal("Failed to send otp!", err)
		}
		return s.send(ctx, *user, code, mailer.PurposeGST)

	case mailer.PurposeEmail, "":
		res := db.Model(&models.OTPVerification{}).Where("user_id = ?", userID).
			Updates(map[string]interface{}{"otp": code, "is_otp_used": false})
		if res.Error != nil {
			return apperror.Internal("Failed to send otp!", res.Error)
		}
		if res.RowsAffected == 0 {
			if err := db.Create(&models.OTPVerification{
				UserID:      user.ID,
				Email:       user.Email,
				PhoneNumber: user.ContactNumber,
				OTP:         code,
			}).Error; err != nil {
				return apperror.Internal("Failed to send otp!", err)
			}
		}
		return s.send(ctx, *user, code, mailer.PurposeEmail)

	default:
		return apperror.Validation(apperror.CodeInvalid, "Submit which otp should resend.")
	}
}

// Refresh exchanges a valid, non revoked refresh token for a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := s.tokens.Parse(refreshToken, auth.TypeRefresh)
	if err != nil {
		return auth.TokenPair{}, apperror.Unauthorized("Token is invalid or expired")
	}

	db := s.db.WithContext(ctx)
	var revoked int64
	if err := db.Model(&models.RevokedToken{}).Where("jti = ?", claims.ID).Count(&revoked).Error; err != nil {
		return auth.TokenPair{}, apperror.Internal("Failed to refresh token!", err)
	}
	if revoked > 0 {
		return auth.TokenPair{}, apperror.Unauthorized("Token is blacklisted")
	}

	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
		return auth.TokenPair{}, apperror.Unauthorized("Token is invalid or expired")
	}

	pair, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return auth.TokenPair{}, apperror.Internal("Failed to issue token!", err)
	}
	return pair, nil
}

// Logout blacklists the refresh token until its own expiry. Logging out
// twice with the same token is not an error.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.Parse(refreshToken, auth.TypeRefresh)
	if err != nil {
		return apperror.Unauthorized("Token is invalid or expired")
	}

	expires := time.Now()
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	err = s.db.WithContext(ctx).Create(&models.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: expires,
	}).Error
	if err != nil && !database.IsDuplicate(err) {
		return apperror.Internal("Failed to logout!", err)
	}
	return nil
}

// PurgeRevokedTokens drops blacklist entries whose tokens have expired.
func (s *Service) PurgeRevokedTokens(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.RevokedToken{})
	return res.RowsAffected, res.Error
}

func (s *Service) UserDetails(ctx context.Context, userID uint) (*Profile, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Details").First(&user, userID).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.NotFound(apperror.CodeFailed, "User not found.")
		}
		return nil, apperror.Internal("Failed to retrieve user!", err)
	}
	return &Profile{
		Name:           user.Name,
		Email:          user.Email,
		ContactNumber:  user.ContactNumber,
		IsActive:       user.IsActive,
		EmailVerified:  user.Details.EmailVerified,
		NumberVerified: user.Details.PhoneNumberVerified,
		IsSeller:       user.Details.IsSeller,
	}, nil
}

func (s *Service) user(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.NotFound(apperror.CodeFailed, "User not found.")
		}
		return nil, apperror.Internal("Failed to process your request!", err)
	}
	return &user, nil
}

func (s *Service) send(ctx context.Context, user models.User, code string, purpose mailer.Purpose) error {
	to := mailer.Recipient{Name: user.Name, Email: user.Email, Phone: user.ContactNumber}
	if err := s.otp.SendOTP(ctx, to, code, purpose); err != nil {
		s.log.Error("otp delivery failed", zap.Uint("user_id", user.ID), zap.String("purpose", string(purpose)), zap.Error(err))
		return apperror.Internal("Failed to send otp!", err)
	}
	return nil
}

// deliver sends like send but only logs a failure.
func (s *Service) deliver(ctx context.Context, user models.User, code string, purpose mailer.Purpose) {
	_ = s.send(ctx, user, code, purpose)
}
