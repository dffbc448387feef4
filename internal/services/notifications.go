package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"finbook/internal/core"
)

// dedupWindow suppresses a repeat notification for the same item within a
// day of the previous one, read or not.
const dedupWindow = 24 * time.Hour

// notificationRetention is how long read notifications are kept before
// cleanup removes them. Unread notifications are never cleaned up.
const notificationRetention = 30 * 24 * time.Hour

// NotificationService scans a user's obligations and turns approaching or
// missed due dates into notifications, at most one per item per dedup window.
type NotificationService struct {
	store ReminderStore
	now   func() time.Time
}

func NewNotificationService(store ReminderStore) *NotificationService {
	return &NotificationService{store: store, now: time.Now}
}

// GenerationResult counts what one generation pass produced.
type GenerationResult struct {
	BillNotifications      int `json:"bill_notifications"`
	ScheduledNotifications int `json:"scheduled_transaction_notifications"`
	TotalGenerated         int `json:"total_generated"`
}

// GenerateDueDateNotifications runs the bill and scheduled-transaction scans
// concurrently. One scan failing does not stop the other; the errors of both
// are joined so neither is lost.
func (s *NotificationService) GenerateDueDateNotifications(ctx context.Context, userID string) (GenerationResult, error) {
	now := s.now()

	var (
		result            GenerationResult
		billErr, schedErr error
		g                 errgroup.Group
	)
	g.Go(func() error {
		result.BillNotifications, billErr = s.GenerateBillNotifications(ctx, userID, now)
		return nil
	})
	g.Go(func() error {
		result.ScheduledNotifications, schedErr = s.GenerateScheduledTransactionNotifications(ctx, userID, now)
		return nil
	})
	g.Wait()

	result.TotalGenerated = result.BillNotifications + result.ScheduledNotifications
	return result, errors.Join(billErr, schedErr)
}

// GenerateBillNotifications creates a notification for every unpaid bill that
// is overdue or due within the horizon, unless one for the same bill already
// exists inside the dedup window. Returns the number created.
func (s *NotificationService) GenerateBillNotifications(ctx context.Context, userID string, now time.Time) (int, error) {
	bills, err := s.store.ListUnpaidBillsDueBy(ctx, userID, now.Add(dueSoonHorizon))
	if err != nil {
		return 0, fmt.Errorf("scan bills: %w", err)
	}

	created := 0
	for _, b := range bills {
		n := core.Notification{
			Type:        core.NotifyBillDue,
			RelatedKind: core.RelatedBill,
			RelatedID:   b.ID,
		}
		switch ClassifyDue(b.DueDate, now) {
		case StatusOverdue:
			n.Priority = core.PriorityHigh
			n.Title = "Overdue bill: " + b.Name
			n.Message = fmt.Sprintf("%s (%s) is %d day(s) overdue", b.Name, b.Amount, overdueDays(b.DueDate, now))
		case StatusDueSoon:
			n.Priority = core.PriorityMedium
			n.Title = "Upcoming bill: " + b.Name
			n.Message = fmt.Sprintf("%s (%s) is due in %d day(s)", b.Name, b.Amount, dueInDays(b.DueDate, now))
		default:
			continue
		}

		ok, err := s.createDeduped(ctx, userID, n, now)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// GenerateScheduledTransactionNotifications does the same scan over
// unexecuted scheduled transactions.
func (s *NotificationService) GenerateScheduledTransactionNotifications(ctx context.Context, userID string, now time.Time) (int, error) {
	items, err := s.store.ListPendingScheduledDueBy(ctx, userID, now.Add(dueSoonHorizon))
	if err != nil {
		return 0, fmt.Errorf("scan scheduled transactions: %w", err)
	}

	created := 0
	for _, st := range items {
		n := core.Notification{
			Type:        core.NotifyScheduledTx,
			RelatedKind: core.RelatedScheduledTx,
			RelatedID:   st.ID,
		}
		switch ClassifyDue(st.ScheduledDate, now) {
		case StatusOverdue:
			n.Priority = core.PriorityHigh
			n.Title = "Missed scheduled transaction: " + st.Description
			n.Message = fmt.Sprintf("%s (%s) was scheduled %d day(s) ago", st.Description, st.Amount, overdueDays(st.ScheduledDate, now))
		case StatusDueSoon:
			n.Priority = core.PriorityMedium
			n.Title = "Upcoming scheduled transaction: " + st.Description
			n.Message = fmt.Sprintf("%s (%s) is scheduled in %d day(s)", st.Description, st.Amount, dueInDays(st.ScheduledDate, now))
		default:
			continue
		}

		ok, err := s.createDeduped(ctx, userID, n, now)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// createDeduped inserts n unless an equivalent notification exists inside the
// dedup window. A conflicting insert means a concurrent run won the race for
// this item; that counts as a skip, not a failure.
func (s *NotificationService) createDeduped(ctx context.Context, userID string, n core.Notification, now time.Time) (bool, error) {
	recent, err := s.store.HasRecentNotification(ctx, userID, n.Type, n.RelatedKind, n.RelatedID, now.Add(-dedupWindow))
	if err != nil {
		return false, fmt.Errorf("check dedup window: %w", err)
	}
	if recent {
		return false, nil
	}

	n.ID = uuid.NewString()
	n.UserID = userID
	n.CreatedAt = now
	if err := s.store.InsertNotification(ctx, n); err != nil {
		if errors.Is(err, core.ErrConflict) {
			slog.DebugContext(ctx, "Duplicate notification suppressed",
				"type", n.Type, "related_id", n.RelatedID)
			return false, nil
		}
		return false, fmt.Errorf("insert notification: %w", err)
	}
	return true, nil
}

// CleanupOldNotifications removes read notifications older than the retention
// period and reports how many were deleted.
func (s *NotificationService) CleanupOldNotifications(ctx context.Context, userID string) (int64, error) {
	n, err := s.store.DeleteReadNotificationsBefore(ctx, userID, s.now().Add(-notificationRetention))
	if err != nil {
		return 0, fmt.Errorf("cleanup notifications: %w", err)
	}
	return n, nil
}

// RunReminderPass generates notifications and runs cleanup for every user
// with pending obligations. Per-user failures are logged and do not stop the
// pass.
func (s *NotificationService) RunReminderPass(ctx context.Context) error {
	users, err := s.store.ListActiveUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users for reminder pass: %w", err)
	}

	for _, userID := range users {
		result, err := s.GenerateDueDateNotifications(ctx, userID)
		if err != nil {
			slog.ErrorContext(ctx, "Reminder generation failed", "user_id", userID, "error", err)
		}
		if result.TotalGenerated > 0 {
			slog.InfoContext(ctx, "Generated reminders",
				"user_id", userID,
				"bills", result.BillNotifications,
				"scheduled", result.ScheduledNotifications)
		}

		deleted, err := s.CleanupOldNotifications(ctx, userID)
		if err != nil {
			slog.ErrorContext(ctx, "Notification cleanup failed", "user_id", userID, "error", err)
			continue
		}
		if deleted > 0 {
			slog.InfoContext(ctx, "Cleaned up old notifications", "user_id", userID, "deleted", deleted)
		}
	}
	return nil
}
