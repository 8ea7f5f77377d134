package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/models"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/roles"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ThreadRepository owns persistence for threads, participants, messages,
// attachments, read receipts, notifications, escalations and archive records.
// No business policy lives here; services enforce authorization before
// calling in.
type ThreadRepository interface {
	CreateThread(thread *models.Thread, participants []models.Participant) error
	GetThread(threadID uint) (*models.Thread, error)
	ListThreadsForUser(userID uint) ([]models.Thread, error)
	ListThreadsForOrganization(orgID uint) ([]models.Thread, error)

	AddParticipant(threadID, userID uint, role string) error
	IsParticipant(threadID, userID uint) (bool, error)
	ListParticipants(threadID uint) ([]models.Participant, error)

	CreateMessage(message *models.Message) error
	GetMessage(messageID uint) (*models.Message, error)
	ListMessages(threadID uint) ([]models.Message, error)

	CreateAttachment(attachment *models.Attachment) error

	UpsertReadReceipt(messageID, userID uint, readAt time.Time) error

	CreateNotification(notification *models.Notification) error
	ListNotificationsForUser(userID uint) ([]models.Notification, error)
	MarkNotificationRead(notificationID, userID uint) error

	CreateEscalation(escalation *models.Escalation) error
	UpsertArchive(archive *models.ThreadArchive) error
	GetArchive(threadID uint) (*models.ThreadArchive, error)

	GetUser(userID uint) (*models.User, error)
	GetUserByAuth0ID(auth0ID string) (*models.User, error)
	FindUserByRole(role roles.Role) (*models.User, error)
}

// GormThreadRepository is the gorm-backed ThreadRepository.
type GormThreadRepository struct {
	db *gorm.DB
}

// NewGormThreadRepository creates a repository over the given database handle.
func NewGormThreadRepository(db *gorm.DB) *GormThreadRepository {
	return &GormThreadRepository{db: db}
}

// CreateThread inserts the thread and its initial participant set in one
// transaction.
func (r *GormThreadRepository) CreateThread(thread *models.Thread, participants []models.Participant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(thread).Error; err != nil {
			return fmt.Errorf("create thread: %w", err)
		}
		for i := range participants {
			participants[i].ThreadID = thread.ID
			if participants[i].JoinedAt.IsZero() {
				participants[i].JoinedAt = time.Now().UTC()
			}
		}
		if len(participants) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&participants).Error; err != nil {
				return fmt.Errorf("create participants: %w", err)
			}
		}
		return nil
	})
}

// GetThread fetches a thread with its participants. The Archived flag is
// filled from thread_archives.
func (r *GormThreadRepository) GetThread(threadID uint) (*models.Thread, error) {
	var thread models.Thread
	err := r.db.Preload("Participants.User").First(&thread, threadID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get thread: %w", err)
	}
	archived, err := r.isArchived(thread.ID)
	if err != nil {
		return nil, err
	}
	thread.Archived = archived
	return &thread, nil
}

// ListThreadsForUser lists threads the user participates in, most recently
// active first.
func (r *GormThreadRepository) ListThreadsForUser(userID uint) ([]models.Thread, error) {
	var threads []models.Thread
	err := r.db.
		Joins("JOIN participants ON participants.thread_id = threads.id").
		Where("participants.user_id = ?", userID).
		Order("threads.updated_at DESC").
		Find(&threads).Error
	if err != nil {
		return nil, fmt.Errorf("list threads for user: %w", err)
	}
	return r.fillArchived(threads)
}

// ListThreadsForOrganization lists every thread in an organization, most
// recently active first.
func (r *GormThreadRepository) ListThreadsForOrganization(orgID uint) ([]models.Thread, error) {
	var threads []models.Thread
	err := r.db.
		Where("organization_id = ?", orgID).
		Order("updated_at DESC").
		Find(&threads).Error
	if err != nil {
		return nil, fmt.Errorf("list threads for organization: %w", err)
	}
	return r.fillArchived(threads)
}

func (r *GormThreadRepository) fillArchived(threads []models.Thread) ([]models.Thread, error) {
	for i := range threads {
		archived, err := r.isArchived(threads[i].ID)
		if err != nil {
			return nil, err
		}
		threads[i].Archived = archived
	}
	return threads, nil
}

func (r *GormThreadRepository) isArchived(threadID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.ThreadArchive{}).Where("thread_id = ?", threadID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check archive: %w", err)
	}
	return count > 0, nil
}

// AddParticipant adds a user to a thread. Adding an existing (thread, user)
// pair is a no-op success: escalation may add a role-holder who is already
// present.
func (r *GormThreadRepository) AddParticipant(threadID, userID uint, role string) error {
	if err := r.requireThread(threadID); err != nil {
		return err
	}
	participant := models.Participant{
		ThreadID: threadID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&participant).Error
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

// IsParticipant reports whether the user has a participant row in the thread.
func (r *GormThreadRepository) IsParticipant(threadID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Participant{}).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check participant: %w", err)
	}
	return count > 0, nil
}

// ListParticipants lists a thread's participants with their user records.
func (r *GormThreadRepository) ListParticipants(threadID uint) ([]models.Participant, error) {
	if err := r.requireThread(threadID); err != nil {
		return nil, err
	}
	var participants []models.Participant
	err := r.db.Preload("User").
		Where("thread_id = ?", threadID).
		Order("joined_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}

// CreateMessage appends a message and bumps the thread's updated_at in one
// transaction.
func (r *GormThreadRepository) CreateMessage(message *models.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var thread models.Thread
		if err := tx.First(&thread, message.ThreadID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load thread: %w", err)
		}
		if err := tx.Create(message).Error; err != nil {
			return fmt.Errorf("create message: %w", err)
		}
		if err := tx.Model(&thread).Update("updated_at", time.Now().UTC()).Error; err != nil {
			return fmt.Errorf("bump thread: %w", err)
		}
		return nil
	})
}

// GetMessage fetches a message by ID.
func (r *GormThreadRepository) GetMessage(messageID uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Sender").First(&message, messageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &message, nil
}

// ListMessages lists a thread's messages ordered by creation time.
func (r *GormThreadRepository) ListMessages(threadID uint) ([]models.Message, error) {
	if err := r.requireThread(threadID); err != nil {
		return nil, err
	}
	var messages []models.Message
	err := r.db.Preload("Sender").Preload("Attachments").
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// CreateAttachment appends an attachment to an existing message.
func (r *GormThreadRepository) CreateAttachment(attachment *models.Attachment) error {
	var count int64
	if err := r.db.Model(&models.Message{}).Where("id = ?", attachment.MessageID).Count(&count).Error; err != nil {
		return fmt.Errorf("check message: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	if err := r.db.Create(attachment).Error; err != nil {
		return fmt.Errorf("create attachment: %w", err)
	}
	return nil
}

// UpsertReadReceipt records that a user read a message. A second call for the
// same (message, user) pair refreshes read_at instead of adding a row.
func (r *GormThreadRepository) UpsertReadReceipt(messageID, userID uint, readAt time.Time) error {
	receipt := models.ReadReceipt{
		MessageID: messageID,
		UserID:    userID,
		ReadAt:    readAt,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"read_at"}),
	}).Create(&receipt).Error
	if err != nil {
		return fmt.Errorf("upsert read receipt: %w", err)
	}
	return nil
}

// CreateNotification records one delivery attempt outcome.
func (r *GormThreadRepository) CreateNotification(notification *models.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListNotificationsForUser lists a user's notifications, newest first.
func (r *GormThreadRepository) ListNotificationsForUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead flips an unread in-app notification to read. Only the
// recipient may do so.
func (r *GormThreadRepository) MarkNotificationRead(notificationID, userID uint) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND channel = ?", notificationID, userID, models.ChannelInApp).
		Update("status", models.NotificationRead)
	if result.Error != nil {
		return fmt.Errorf("mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateEscalation appends an escalation audit record.
func (r *GormThreadRepository) CreateEscalation(escalation *models.Escalation) error {
	if err := r.requireThread(escalation.ThreadID); err != nil {
		return err
	}
	if err := r.db.Create(escalation).Error; err != nil {
		return fmt.Errorf("create escalation: %w", err)
	}
	return nil
}

// UpsertArchive creates the thread's archive record, or updates
// archived_by/reason/archived_at if one already exists.
func (r *GormThreadRepository) UpsertArchive(archive *models.ThreadArchive) error {
	if err := r.requireThread(archive.ThreadID); err != nil {
		return err
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "thread_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"archived_by", "reason", "archived_at"}),
	}).Create(archive).Error
	if err != nil {
		return fmt.Errorf("upsert archive: %w", err)
	}
	return nil
}

// GetArchive fetches a thread's archive record if present.
func (r *GormThreadRepository) GetArchive(threadID uint) (*models.ThreadArchive, error) {
	var archive models.ThreadArchive
	err := r.db.Where("thread_id = ?", threadID).First(&archive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get archive: %w", err)
	}
	return &archive, nil
}

// GetUser fetches a user by ID.
func (r *GormThreadRepository) GetUser(userID uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetUserByAuth0ID fetches a user by their Auth0 subject.
func (r *GormThreadRepository) GetUserByAuth0ID(auth0ID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("auth0_id = ?", auth0ID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by auth0 id: %w", err)
	}
	return &user, nil
}

// FindUserByRole returns the first user whose canonical role matches the
// target, or ErrNotFound when no one holds it. Raw role labels vary, so the
// match is done on the normalized value.
func (r *GormThreadRepository) FindUserByRole(role roles.Role) (*models.User, error) {
	var users []models.User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("find user by role: %w", err)
	}
	for i := range users {
		if roles.Resolve(users[i].Role) == role {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *GormThreadRepository) requireThread(threadID uint) error {
	var count int64
	if err := r.db.Model(&models.Thread{}).Where("id = ?", threadID).Count(&count).Error; err != nil {
		return fmt.Errorf("check thread: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
