// Package complaint implements the complaint / ban engine: dedup,
// threshold counting and the one-shot ban transition.
package complaint

import (
	"fmt"
	"log"
	"time"

	"arendago/backend/internal/config"
	"arendago/backend/internal/models"
	"arendago/backend/internal/storage"
)

// Outcome сообщает вызывающей стороне, что произошло с жалобой.
// Отклонённые жалобы (своё объявление, дубликат) не являются ошибками.
type Outcome struct {
	// Accepted — жалоба записана (или «уже сдана» обработана).
	Accepted bool
	// ListingClosed — объявление закрыто по причине «уже сдана».
	ListingClosed bool
	// Banned — эта жалоба стала пороговой: владелец забанен,
	// объявление архивировано, создана запись в чёрном списке.
	Banned bool
	// Listing — состояние объявления на момент обработки.
	Listing *models.Listing
}

type Service struct {
	Storage storage.Storage
	Config  *config.Config
}

func NewService(s storage.Storage, cfg *config.Config) *Service {
	return &Service{Storage: s, Config: cfg}
}

// Submit обрабатывает жалобу reporter'а на объявление.
//
// Весь путь «записать жалобу → посчитать порог → забанить» выполняется
// в одной транзакции под блокировкой строки объявления: две
// одновременные пороговые жалобы не должны забанить владельца дважды.
func (s *Service) Submit(listingID uint, reporterTelegramID int64, reason models.ComplaintReason, description string) (*Outcome, error) {
	outcome := &Outcome{}

	err := s.Storage.Transaction(func(tx storage.Storage) error {
		listing, err := tx.GetListingForUpdate(listingID)
		if err != nil {
			return err
		}
		outcome.Listing = listing

		reporter, err := tx.GetUserByTelegramID(reporterTelegramID)
		if err != nil {
			return err
		}

		// Жалоба на собственное объявление молча игнорируется.
		if listing.UserID == reporter.ID {
			return nil
		}

		// «Уже сдана» минует дедупликацию и порог: одной жалобы от
		// любого пользователя достаточно, чтобы закрыть объявление.
		if reason == models.ReasonAlreadyRented {
			outcome.Accepted = true
			if listing.Status == models.StatusClosed || listing.Status == models.StatusArchived {
				return nil
			}
			listing.Status = models.StatusClosed
			if err := tx.SaveListing(listing); err != nil {
				return err
			}
			outcome.ListingClosed = true
			log.Printf("INFO: Listing %d closed by already-rented report from %d", listingID, reporterTelegramID)
			return nil
		}

		exists, err := tx.ComplaintExists(listing.ID, reporter.ID)
		if err != nil {
			return err
		}
		if exists {
			// Повторная жалоба того же пользователя — тихий no-op.
			return nil
		}

		c := &models.Complaint{
			ListingID:   listing.ID,
			ReporterID:  reporter.ID,
			Reason:      reason,
			Description: description,
		}
		if err := tx.SaveComplaint(c); err != nil {
			return err
		}
		outcome.Accepted = true

		if !reason.CountsTowardBan() {
			return nil
		}

		count, err := tx.CountComplaintsTowardBan(listing.ID)
		if err != nil {
			return err
		}
		if count < int64(s.Config.ComplaintThreshold) {
			return nil
		}

		// Конкурентная пороговая жалоба уже могла забанить владельца:
		// тогда объявление под блокировкой видно как ARCHIVED.
		if listing.Status == models.StatusArchived {
			return nil
		}

		if err := s.banOwner(tx, listing, count); err != nil {
			return err
		}
		outcome.Banned = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("submit complaint on listing %d: %w", listingID, err)
	}
	return outcome, nil
}

// banOwner архивирует объявление, ограничивает владельца и создаёт
// одну запись чёрного списка. Вызывается под блокировкой строки.
func (s *Service) banOwner(tx storage.Storage, listing *models.Listing, count int64) error {
	listing.Status = models.StatusArchived
	if err := tx.SaveListing(listing); err != nil {
		return err
	}

	owner, err := tx.GetUserByID(listing.UserID)
	if err != nil {
		return err
	}
	until := time.Now().Add(s.Config.BanDuration)
	owner.BannedUntil = &until
	if err := tx.SaveUser(owner); err != nil {
		return err
	}

	entry := &models.BlacklistEntry{
		TelegramID:     owner.TelegramID,
		Username:       owner.Username,
		Phone:          listing.Contact,
		Reason:         "Жалобы пользователей: мошенничество / фото не соответствуют",
		ComplaintCount: int(count),
		ListingID:      &listing.ID,
	}
	if err := tx.SaveBlacklistEntry(entry); err != nil {
		return err
	}

	if err := tx.CacheBan(owner.TelegramID, until); err != nil {
		log.Printf("WARN: Failed to cache ban for %d: %v", owner.TelegramID, err)
	}
	log.Printf("INFO: User %d banned until %s after %d complaints on listing %d",
		owner.TelegramID, until.Format(time.RFC3339), count, listing.ID)
	return nil
}
