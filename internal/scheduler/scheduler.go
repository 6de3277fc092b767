// Package scheduler runs the periodic lifecycle sweeps: reminders for
// stale listings and archival of expired ones.
package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"

	"arendago/backend/internal/events"
	"arendago/backend/internal/listing"
	"arendago/backend/internal/models"
	"arendago/backend/internal/storage"
	"arendago/backend/internal/transport"
)

type Scheduler struct {
	Storage  storage.Storage
	Listings *listing.Service
	Sender   transport.Sender

	cron *cron.Cron
}

func New(st storage.Storage, listings *listing.Service, sender transport.Sender) *Scheduler {
	return &Scheduler{
		Storage:  st,
		Listings: listings,
		Sender:   sender,
		cron:     cron.New(),
	}
}

// Start регистрирует задачи и запускает планировщик. Напоминания
// проходят каждые 6 часов, архивация просроченных — каждый час.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 */6 * * *", s.RunReminderSweep); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@hourly", s.RunExpirySweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("INFO: Scheduler started (reminders every 6h, expiry hourly)")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunReminderSweep находит активные объявления старше порога и один раз
// спрашивает владельца, актуальны ли они. Ошибка на одной строке не
// останавливает обход.
func (s *Scheduler) RunReminderSweep() {
	listings, err := s.Listings.FindNeedingReminder()
	if err != nil {
		log.Printf("ERROR: Reminder sweep query failed: %v", err)
		return
	}
	for i := range listings {
		l := &listings[i]
		// Сначала фиксация reminder_sent_at: повторный запуск свипа не
		// должен прислать второе напоминание.
		if err := s.Listings.MarkReminderSent(l.ID); err != nil {
			log.Printf("ERROR: Failed to mark reminder for listing %d: %v", l.ID, err)
			continue
		}
		s.Sender.SendReminder(l.User.TelegramID, l.ID)
	}
	if len(listings) > 0 {
		log.Printf("INFO: Reminder sweep processed %d listings", len(listings))
	}
}

// RunExpirySweep архивирует объявления с истёкшим сроком и сообщает
// владельцам.
func (s *Scheduler) RunExpirySweep() {
	listings, err := s.Listings.FindExpired()
	if err != nil {
		log.Printf("ERROR: Expiry sweep query failed: %v", err)
		return
	}
	for i := range listings {
		l := &listings[i]
		if err := s.Listings.Archive(l.ID); err != nil {
			log.Printf("ERROR: Failed to archive listing %d: %v", l.ID, err)
			continue
		}
		l.Status = models.StatusArchived
		s.Sender.UpdateListingStatus(l)
		s.Sender.SendPrompt(l.User.TelegramID,
			"📦 Срок публикации вашего объявления истёк, оно снято с публикации.\nВы можете разместить его заново через меню.", nil)

		if err := s.Storage.PublishEvent(events.FromListing(events.KindStatusChanged, l)); err != nil {
			log.Printf("WARN: Failed to publish expiry event for listing %d: %v", l.ID, err)
		}
	}
	if len(listings) > 0 {
		log.Printf("INFO: Expiry sweep archived %d listings", len(listings))
	}
}
