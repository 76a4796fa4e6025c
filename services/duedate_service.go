// services/duedate_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"tailorpro-backend/models"
	"tailorpro-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Every store call a scan makes runs under this bound; a timed-out scan is
// simply retried on the next trigger.
const scanTimeout = 30 * time.Second

// ReminderResult describes one notification created by a scan.
type ReminderResult struct {
	OrderNo       int64  `json:"orderNo"`
	CustomerName  string `json:"customerName"`
	HoursUntilDue int    `json:"hoursUntilDue"`
	Tier          string `json:"tier"`
}

// DueDateService produces reminder notifications for orders approaching
// their due date. One consolidated policy with three tiers, each deduped
// atomically on (order, calendar day, tier), so reruns and concurrent runs
// never double-insert.
type DueDateService struct {
	db     *gorm.DB
	client *twilio.RestClient
	mailer EmailSender
}

func NewDueDateService(db *gorm.DB) *DueDateService {
	s := &DueDateService{db: db, mailer: NoopEmailSender{}}

	if accountSid := os.Getenv("TWILIO_ACCOUNT_SID"); accountSid != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: os.Getenv("TWILIO_AUTH_TOKEN"),
		})
	}

	return s
}

// StartScheduler wires the scans onto cron: the daily scan every morning at
// 9, the windowed scan every hour.
func (s *DueDateService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()
		if err := s.RunDailyScan(ctx); err != nil {
			log.Printf("Daily due-date scan failed: %v", err)
		}
	})

	c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()
		if _, err := s.RunHourlyScan(ctx); err != nil {
			log.Printf("Hourly due-date scan failed: %v", err)
		}
	})

	c.Start()
	log.Println("Due-date scheduler started")
}

// RunDailyScan creates one "daily" notification for every open order due
// tomorrow, then retires notifications for completed orders. Running it
// again the same day is a no-op.
func (s *DueDateService) RunDailyScan(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	now := time.Now()

	tomorrow := utils.NextDay(now)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var orders []models.Order
	if err := db.Where("due_date >= ? AND due_date < ? AND status <> ?",
		tomorrow, dayAfter, models.OrderCompleted).Find(&orders).Error; err != nil {
		return fmt.Errorf("fetch orders due tomorrow: %w", err)
	}

	log.Printf("Daily scan: %d order(s) due tomorrow", len(orders))

	for _, order := range orders {
		created, err := s.createNotification(db, order, models.TierDaily, 24, false, now)
		if err != nil {
			// One bad record must not block the rest of the batch.
			log.Printf("Order #%d: failed to create daily notification: %v", order.OrderNo, err)
			continue
		}
		if created {
			log.Printf("Order #%d: daily notification created", order.OrderNo)
		}
	}

	if _, err := s.CleanupCompleted(ctx); err != nil {
		return err
	}
	return nil
}

// RunHourlyScan creates windowed notifications for orders due within the
// next 24 hours: one when 22-24 hours remain, one urgent when 10-12 hours
// remain. Returns the reminders actually created.
func (s *DueDateService) RunHourlyScan(ctx context.Context) ([]ReminderResult, error) {
	db := s.db.WithContext(ctx)
	now := time.Now()

	var orders []models.Order
	if err := db.Where("due_date >= ? AND due_date <= ? AND status <> ?",
		now, now.Add(24*time.Hour), models.OrderCompleted).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("fetch orders due within 24h: %w", err)
	}

	var reminders []ReminderResult

	for _, order := range orders {
		hours := int(order.DueDate.Sub(now).Hours())

		tier, urgent, ok := notificationTier(hours)
		if !ok {
			continue
		}

		created, err := s.createNotification(db, order, tier, hours, urgent, now)
		if err != nil {
			log.Printf("Order #%d: failed to create %s notification: %v", order.OrderNo, tier, err)
			continue
		}
		if !created {
			continue
		}

		reminders = append(reminders, ReminderResult{
			OrderNo:       order.OrderNo,
			CustomerName:  order.CustomerName,
			HoursUntilDue: hours,
			Tier:          tier,
		})
	}

	return reminders, nil
}

// CleanupCompleted deletes every notification whose order has reached the
// completed status. Returns the number of rows removed.
func (s *DueDateService) CleanupCompleted(ctx context.Context) (int64, error) {
	db := s.db.WithContext(ctx)

	result := db.Where("order_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Model(&models.Order{}).
			Select("id").Where("status = ?", models.OrderCompleted),
	).Delete(&models.Notification{})

	if result.Error != nil {
		return 0, fmt.Errorf("cleanup completed-order notifications: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("Cleaned up %d notification(s) for completed orders", result.RowsAffected)
	}
	return result.RowsAffected, nil
}

// notificationTier maps hours-until-due onto a windowed tier. Outside both
// windows no notification is created.
func notificationTier(hours int) (tier string, urgent bool, ok bool) {
	switch {
	case hours > 22 && hours <= 24:
		return models.TierApproaching, false, true
	case hours > 10 && hours <= 12:
		return models.TierUrgent, true, true
	default:
		return "", false, false
	}
}

// createNotification inserts the notification unless its dedupe key already
// exists for today. Reports whether a row was actually inserted.
func (s *DueDateService) createNotification(db *gorm.DB, order models.Order, tier string, hours int, urgent bool, now time.Time) (bool, error) {
	notification := models.Notification{
		ID:            uuid.New(),
		OrderID:       order.ID,
		OrderNo:       order.OrderNo,
		CustomerName:  order.CustomerName,
		DueDate:       order.DueDate,
		HoursUntilDue: hours,
		Tier:          tier,
		DedupeDay:     utils.BeginningOfDay(now),
		IsUrgent:      urgent,
	}

	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "order_id"}, {Name: "dedupe_day"}, {Name: "tier"},
		},
		DoNothing: true,
	}).Create(&notification)

	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	s.deliverAlert(notification)
	return true, nil
}

// deliverAlert fans the freshly created notification out to staff accounts
// that opted in. Delivery failures are logged and never fail the scan.
func (s *DueDateService) deliverAlert(n models.Notification) {
	subject := fmt.Sprintf("Reminder: Order #%d due in %d hours", n.OrderNo, n.HoursUntilDue)
	if n.IsUrgent {
		subject = fmt.Sprintf("Urgent: Order #%d due in %d hours", n.OrderNo, n.HoursUntilDue)
	}
	body := fmt.Sprintf("Order #%d for %s is due %s.",
		n.OrderNo, n.CustomerName, n.DueDate.Format("Mon, 02 Jan 2006 15:04"))

	if adminEmail := os.Getenv("ADMIN_EMAIL"); adminEmail != "" {
		if err := s.mailer.Send(adminEmail, subject, "<p>"+body+"</p>"); err != nil {
			log.Printf("Failed to send email alert for order #%d: %v", n.OrderNo, err)
		}
	}

	if s.client == nil {
		return
	}

	var staff []models.User
	if err := s.db.Where("is_active = ? AND (sms_notifications = ? OR whatsapp_notifications = ?)",
		true, true, true).Find(&staff).Error; err != nil {
		log.Printf("Failed to fetch staff for alerts: %v", err)
		return
	}

	for _, user := range staff {
		phone := user.NotifyPhone
		if phone == "" {
			phone = user.Phone
		}
		if phone == "" {
			continue
		}

		// WhatsApp when enabled and the number is E.164, SMS otherwise.
		channel := "sms"
		to := phone
		if user.WhatsAppNotifications && strings.HasPrefix(phone, "+") {
			to = "whatsapp:" + phone
			channel = "whatsapp"
		}

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetBody(subject + " " + body)
		if channel == "whatsapp" {
			params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
		} else {
			params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
		}

		resp, err := s.client.Api.CreateMessage(params)
		if err != nil {
			log.Printf("Failed to send alert to %s: %v", phone, err)
			continue
		}
		if resp.Sid != nil {
			log.Printf("Alert sent to %s, SID: %s", phone, *resp.Sid)
		}
	}
}
