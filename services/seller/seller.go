// Package seller captures the GST registration, business profile and bank
// accounts of a seller.
package seller

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"onboardu/apperror"
	"onboardu/database"
	"onboardu/mailer"
	"onboardu/models"
	"onboardu/storage"
	"onboardu/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	gstCertificateFolder = "gst_certificates"
	profilePicFolder     = "business_profile"
)

type Service struct {
	db    *gorm.DB
	otp   mailer.OTPSender
	store storage.Storage
	log   *zap.Logger
}

func NewService(db *gorm.DB, otp mailer.OTPSender, store storage.Storage, log *zap.Logger) *Service {
	return &Service{db: db, otp: otp, store: store, log: log}
}

// NewSellerID builds the public seller identifier: ten random characters, a
// literal U, then the user id.
func NewSellerID(userID uint) string {
	return fmt.Sprintf("%sU%d", utils.GenerateUniqueID(10), userID)
}

// UploadGSTCertificate stores the certificate and attaches it to the user's
// GST record, creating the record (and its seller id) on first upload.
func (s *Service) UploadGSTCertificate(ctx context.Context, userID uint, file *multipart.FileHeader) (*models.SellerGST, error) {
	if file == nil {
		return nil, apperror.Validation(apperror.CodeFailed, "Select GST certificate to upload.")
	}
	path, err := s.store.Save(ctx, file, gstCertificateFolder)
	if err != nil {
		return nil, apperror.Internal("Failed to upload certificate!", err)
	}

	var gst *models.SellerGST
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		gst, _, err = database.GetOrCreate(tx,
			&models.SellerGST{UserID: userID},
			&models.SellerGST{UserID: userID, SellerID: NewSellerID(userID)})
		if err != nil {
			return err
		}
		gst.Certificate = path
		return tx.Model(gst).Update("certificate", path).Error
	})
	if err != nil {
		return nil, apperror.Internal("Failed to upload certificate!", err)
	}
	return gst, nil
}

type GSTDetails struct {
	TradeName       string
	GSTNumber       string
	GSTType         string
	LegalName       string
	BusinessAddress string
}

func (d GSTDetails) trimmed() GSTDetails {
	return GSTDetails{
		TradeName:       strings.TrimSpace(d.TradeName),
		GSTNumber:       strings.ToUpper(strings.TrimSpace(d.GSTNumber)),
		GSTType:         strings.TrimSpace(d.GSTType),
		LegalName:       strings.TrimSpace(d.LegalName),
		BusinessAddress: strings.TrimSpace(d.BusinessAddress),
	}
}

func (d GSTDetails) complete() bool {
	return d.TradeName != "" && d.GSTNumber != "" && d.GSTType != "" && d.LegalName != "" && d.BusinessAddress != ""
}

// UpdateGSTDetails overwrites the GST fields and always starts a new
// verification round: the claim becomes unverified and a fresh OTP is sent.
func (s *Service) UpdateGSTDetails(ctx context.Context, userID uint, details GSTDetails) (*models.SellerGST, error) {
	details = details.trimmed()
	if !details.complete() {
		return nil, apperror.Validation(apperror.CodeFailed, "Enter all details.")
	}

	db := s.db.WithContext(ctx)
	var gst models.SellerGST
	if err := db.Where("user_id = ?", userID).First(&gst).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.NotFound(apperror.CodeFailed, "Upload GST certificate first.")
		}
		return nil, apperror.Internal("Failed to update GST details!", err)
	}

	code := s.otp.GenerateOTP()
	err := db.Model(&gst).Updates(map[string]interface{}{
		"trade_name":       details.TradeName,
		"gst_number":       details.GSTNumber,
		"gst_type":         details.GSTType,
		"legal_name":       details.LegalName,
		"business_address": details.BusinessAddress,
		"gst_verified":     false,
		"is_otp_used":      false,
		"otp":              code,
	}).Error
	if err != nil {
		return nil, apperror.Internal("Failed to update GST details!", err)
	}
	gst.TradeName = details.TradeName
	gst.GSTNumber = details.GSTNumber
	gst.GSTType = details.GSTType
	gst.LegalName = details.LegalName
	gst.BusinessAddress = details.BusinessAddress
	gst.GSTVerified = false
	gst.IsOTPUsed = false
	gst.OTP = code

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		s.log.Error("gst otp not sent, user lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return &gst, nil
	}
	to := mailer.Recipient{Name: user.Name, Email: user.Email, Phone: user.ContactNumber}
	if err := s.otp.SendOTP(ctx, to, code, mailer.PurposeGST); err != nil {
		s.log.Error("otp delivery failed", zap.Uint("user_id", userID), zap.String("purpose", string(mailer.PurposeGST)), zap.Error(err))
	}
	return &gst, nil
}

// BusinessUpdate is one of UpdateProfilePicture or UpdateProfileFields.
type BusinessUpdate interface {
	businessUpdate()
}

type UpdateProfilePicture struct {
	File *multipart.FileHeader
}

type UpdateProfileFields struct {
	Name           string
	StoreName      string
	Address        string
	EmailAddress   string
	PhoneNumber    string
	ShippingMethod string
}

func (UpdateProfilePicture) businessUpdate() {}
func (UpdateProfileFields) businessUpdate()  {}

// UpdateBusinessProfile upserts the user's business with either a new
// profile picture or the textual fields, never both.
func (s *Service) UpdateBusinessProfile(ctx context.Context, userID uint, update BusinessUpdate) (*models.Business, error) {
	row := models.Business{UserID: userID}
	var columns []string

	switch u := update.(type) {
	case UpdateProfilePicture:
		if u.File == nil {
			return nil, apperror.Validation(apperror.CodeFailed, "Select profile picture to upload.")
		}
		path, err := s.store.Save(ctx, u.File, profilePicFolder)
		if err != nil {
			return nil, apperror.Internal("Failed to upload profile picture!", err)
		}
		row.ProfilePic = path
		columns = []string{"profile_pic", "updated_at"}

	case UpdateProfileFields:
		row.Name = strings.TrimSpace(u.Name)
		row.StoreName = strings.TrimSpace(u.StoreName)
		row.Address = strings.TrimSpace(u.Address)
		row.EmailAddress = strings.TrimSpace(u.EmailAddress)
		row.PhoneNumber = strings.TrimSpace(u.PhoneNumber)
		row.ShippingMethod = strings.TrimSpace(u.ShippingMethod)
		columns = []string{"name", "store_name", "address", "email_address", "phone_number", "shipping_method", "updated_at"}

	default:
		return nil, apperror.Validation(apperror.CodeFailed, "Submit action in 0 or 1.")
	}

	db := s.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(&row).Error
	if err != nil {
		return nil, apperror.Internal("Failed to update business profile!", err)
	}
	return s.Business(ctx, userID)
}

type BankInput struct {
	AccHolderName string
	AccNumber     string
	IFSC          string
}

// AddBankDetails appends a bank account to the user's business.
func (s *Service) AddBankDetails(ctx context.Context, userID uint, in BankInput) (*models.BankDetails, error) {
	db := s.db.WithContext(ctx)
	var business models.Business
	if err := db.Where("user_id = ?", userID).First(&business).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.Validation(apperror.CodeFailed, "First create your business profile.")
		}
		return nil, apperror.Internal("Failed to add bank details!", err)
	}

	bank := models.BankDetails{
		BusinessID:    business.ID,
		AccHolderName: strings.TrimSpace(in.AccHolderName),
		AccNumber:     strings.TrimSpace(in.AccNumber),
		IFSC:          strings.ToUpper(strings.TrimSpace(in.IFSC)),
	}
	if bank.AccHolderName == "" || bank.AccNumber == "" || bank.IFSC == "" {
		return nil, apperror.Validation(apperror.CodeFailed, "Submit all bank details.")
	}
	if err := db.Create(&bank).Error; err != nil {
		return nil, apperror.Internal("Failed to add bank details!", err)
	}
	return &bank, nil
}

// Business returns the user's business with its bank accounts, oldest first.
func (s *Service) Business(ctx context.Context, userID uint) (*models.Business, error) {
	var business models.Business
	err := s.db.WithContext(ctx).
		Preload("BankDetails", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("user_id = ?", userID).
		First(&business).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.NotFound(apperror.CodeFailed, "Business profile not found.")
		}
		return nil, apperror.Internal("Failed to retrieve business profile!", err)
	}
	return &business, nil
}

func (s *Service) SellerDetails(ctx context.Context, userID uint) (*models.SellerGST, error) {
	var gst models.SellerGST
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&gst).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.NotFound(apperror.CodeFailed, "Seller details not found.")
		}
		return nil, apperror.Internal("Failed to retrieve seller details!", err)
	}
	return &gst, nil
}

// FileURL turns a stored file reference into a public address.
func (s *Service) FileURL(baseURL, path string) string {
	return s.store.URL(baseURL, path)
}
