package models

import (
	"time"

	"tailorpro-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null" json:"name"`
	Phone    string    `json:"phone"`

	ShopName    string `gorm:"not null" json:"shopName"`
	ShopAddress string `json:"shopAddress"`

	// Due-date alert delivery settings for this staff account.
	NotifyPhone           string `json:"notifyPhone"`
	SMSNotifications      bool   `gorm:"column:sms_notifications;default:false" json:"smsNotifications"`
	WhatsAppNotifications bool   `gorm:"column:whatsapp_notifications;default:false" json:"whatsAppNotifications"`

	LastLogin *time.Time `json:"lastLogin"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	gorm.Model
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
