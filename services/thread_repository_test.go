package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/models"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/roles"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Every connection to an in-memory sqlite database is a separate
	// database, so dispatch goroutines must share the one connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Thread{},
		&models.Participant{},
		&models.Message{},
		&models.Attachment{},
		&models.ReadReceipt{},
		&models.Notification{},
		&models.Escalation{},
		&models.ThreadArchive{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func newTestRepo(t *testing.T) (*gorm.DB, *GormThreadRepository) {
	db := newTestDB(t)
	return db, NewGormThreadRepository(db)
}

func createTestUser(t *testing.T, db *gorm.DB, auth0ID, name, email, phone, role string) *models.User {
	user := models.User{
		Auth0ID: auth0ID,
		Name:    name,
		Email:   email,
		Phone:   phone,
		Role:    role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestCreateThread_WithParticipants(t *testing.T) {
	db, repo := newTestRepo(t)

	tenant := createTestUser(t, db, "auth0|tenant1", "Tina Tenant", "tina@example.com", "", "tenant")
	manager := createTestUser(t, db, "auth0|manager1", "Max Manager", "max@example.com", "", "manager")

	thread := &models.Thread{OrganizationID: 1, Subject: "Leaky faucet in unit 4B"}
	participants := []models.Participant{
		{UserID: tenant.ID, Role: tenant.Role},
		{UserID: manager.ID, Role: manager.Role},
	}
	require.NoError(t, repo.CreateThread(thread, participants))
	assert.NotZero(t, thread.ID)

	fetched, err := repo.GetThread(thread.ID)
	require.NoError(t, err)
	assert.Equal(t, "Leaky faucet in unit 4B", fetched.Subject)
	assert.Len(t, fetched.Participants, 2)
	assert.False(t, fetched.Archived)
}

func TestGetThread_NotFound(t *testing.T) {
	_, repo := newTestRepo(t)

	_, err := repo.GetThread(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddParticipant_Idempotent(t *testing.T) {
	db, repo := newTestRepo(t)

	tenant := createTestUser(t, db, "auth0|tenant1", "Tina Tenant", "tina@example.com", "", "tenant")
	admin := createTestUser(t, db, "auth0|admin1", "Ada Admin", "ada@example.com", "", "admin")

	thread := &models.Thread{OrganizationID: 1, Subject: "Test"}
	require.NoError(t, repo.CreateThread(thread, []models.Participant{{UserID: tenant.ID, Role: tenant.Role}}))

	require.NoError(t, repo.AddParticipant(thread.ID, admin.ID, "admin"))
	require.NoError(t, repo.AddParticipant(thread.ID, admin.ID, "admin"))

	var count int64
	db.Model(&models.Participant{}).Where("thread_id = ? AND user_id = ?", thread.ID, admin.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAddParticipant_MissingThread(t *testing.T) {
	db, repo := newTestRepo(t)

	admin := createTestUser(t, db, "auth0|admin1", "Ada Admin", "ada@example.com", "", "admin")
	err := repo.AddParticipant(404, admin.ID, "admin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateMessage_BumpsThreadActivity(t *testing.T) {
	db, repo := newTestRepo(t)

	tenant := createTestUser(t, db, "auth0|tenant1", "Tina Tenant", "tina@example.com", "", "tenant")

	thread := &models.Thread{OrganizationID: 1, Subject: "Test"}
	require.NoError(t, repo.CreateThread(thread, []models.Participant{{UserID: tenant.ID, Role: tenant.Role}}))

	before, err := repo.GetThread(thread.ID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	message := &models.Message{ThreadID: thread.ID, SenderID: tenant.ID, Body: "Hello"}
	require.NoError(t, repo.CreateMessage(message))
	assert.NotZero(t, message.ID)

	after, err := repo.GetThread(thread.ID)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestCreateMessage_MissingThread(t *testing.T) {
	db, repo := newTestRepo(t)

	tenant := createTestUser(t, db, "auth0|tenant1", "Tina Tenant", "tina@example.com", "", "tenant")
	err := repo.CreateMessage(&models.Message{ThreadID: 404, SenderID: tenant.ID, Body: "Hello"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListThreadsForUser_MostRecentFirst(t *testing.T) {
	db, repo := newTestRepo(t)

	tenant := createTestUser(t, db, "auth0|tenant1", "Tina Tenant", "tina@example.com", "", "tenant")
	other := createTestUser(t, db, "auth0|tenant2", "Tom Tenant", "tom@example.com", "", "tenant")

	first := &models.Thread{OrganizationID: 1, Subject: "First"}
	require.NoError(t, repo.CreateThread(first, []models.Participant{{UserID: tenant.ID, Role: tenant.Role}}))
	second := &models.Thread{OrganizationID: 1, Subject: "Second"}
	require.NoError(t, repo.CreateThread(second, []models.Participant{{UserID: tenant.ID, Role: tenant.Role}}))
	foreign := &models.Thread{OrganizationID: 1, Subject: "Not mine"}
	require.NoError(t, repo.CreateThread(foreign, []models.Participant{{UserID: other.ID, Role: other.Role}}))

	// A new message in the first thread moves it back to the top.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.CreateMessage(&models.Message{ThreadID: first.ID, SenderID: tenant.ID, Body: "Bump"}))

	threads, err := repo.ListThreadsForUser(tenant.ID)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, "First", threads[0].Subject)
	assert.Equal(t, "Second", threads[1].Subject)
}

func TestUpsertReadReceipt_SecondCallRefreshes(t *testing.T) {
	db, repo := newTestRepo(t)

	tenant := createTestUser(t, db, "auth0|tenant1", "Tina Tenant", "tina@example.com", "", "tenant")
	thread := &models.Thread{OrganizationID: 1, Subject: "Test"}
	require.NoError(t, repo.CreateThread(thread, []models.Participant{{UserID: tenant.ID, Role: tenant.Role}}))
	message := &models.Message{ThreadID: thread.ID, SenderID: tenant.ID, Body: "Hello"}
	require.NoError(t, repo.CreateMessage(message))

	firstRead := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	secondRead := firstRead.Add(time.Hour)
	require.NoError(t, repo.UpsertReadReceipt(message.ID, tenant.ID, firstRead))
	require.NoError(t, repo.UpsertReadReceipt(message.ID, tenant.ID, secondRead))

	var receipts []models.ReadReceipt
	require.NoError(t, db.Where("message_id = ? AND user_id = ?", message.ID, tenant.ID).Find(&receipts).Error)
	require.Len(t, receipts, 1)
	assert.WithinDuration(t, secondRead, receipts[0].ReadAt, time.Second)
}

func TestUpsertArchive_SingleRecordPerThread(t *testing.T) {
	db, repo := newTestRepo(t)

	admin := createTestUser(t, db, "auth0|admin1", "Ada Admin", "ada@example.com", "", "admin")
	super := createTestUser(t, db, "auth0|super1", "Sam Super", "sam@example.com", "", "superadmin")
	thread := &models.Thread{OrganizationID: 1, Subject: "Test"}
	require.NoError(t, repo.CreateThread(thread, []models.Participant{{UserID: admin.ID, Role: admin.Role}}))

	firstReason := "resolved"
	require.NoError(t, repo.UpsertArchive(&models.ThreadArchive{
		ThreadID:   thread.ID,
		ArchivedBy: admin.ID,
		Reason:     &firstReason,
		ArchivedAt: time.Now().UTC(),
	}))

	secondReason := "duplicate"
	require.NoError(t, repo.UpsertArchive(&models.ThreadArchive{
		ThreadID:   thread.ID,
		ArchivedBy: super.ID,
		Reason:     &secondReason,
		ArchivedAt: time.Now().UTC(),
	}))

	var count int64
	db.Model(&models.ThreadArchive{}).Where("thread_id = ?", thread.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	archive, err := repo.GetArchive(thread.ID)
	require.NoError(t, err)
	assert.Equal(t, super.ID, archive.ArchivedBy)
	require.NotNil(t, archive.Reason)
	assert.Equal(t, "duplicate", *archive.Reason)
}

func TestMarkNotificationRead(t *testing.T) {
	db, repo := newTestRepo(t)

	tenant := createTestUser(t, db, "auth0|tenant1", "Tina Tenant", "tina@example.com", "", "tenant")
	other := createTestUser(t, db, "auth0|tenant2", "Tom Tenant", "tom@example.com", "", "tenant")
	thread := &models.Thread{OrganizationID: 1, Subject: "Test"}
	require.NoError(t, repo.CreateThread(thread, []models.Participant{{UserID: tenant.ID, Role: tenant.Role}}))
	message := &models.Message{ThreadID: thread.ID, SenderID: tenant.ID, Body: "Hello"}
	require.NoError(t, repo.CreateMessage(message))

	notification := &models.Notification{
		MessageID: message.ID,
		UserID:    tenant.ID,
		Channel:   models.ChannelInApp,
		Status:    models.NotificationUnread,
	}
	require.NoError(t, repo.CreateNotification(notification))

	// Only the recipient may mark it read.
	assert.ErrorIs(t, repo.MarkNotificationRead(notification.ID, other.ID), ErrNotFound)

	require.NoError(t, repo.MarkNotificationRead(notification.ID, tenant.ID))
	notifications, err := repo.ListNotificationsForUser(tenant.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationRead, notifications[0].Status)
}

func TestFindUserByRole_NormalizesStoredLabels(t *testing.T) {
	db, repo := newTestRepo(t)

	createTestUser(t, db, "auth0|tenant1", "Tina Tenant", "tina@example.com", "", "renter")
	landlord := createTestUser(t, db, "auth0|owner1", "Olive Owner", "olive@example.com", "", "landlord")
	createTestUser(t, db, "auth0|owner2", "Oscar Owner", "oscar@example.com", "", "owner")

	// The stored label "landlord" normalizes to owner; the lowest ID wins.
	found, err := repo.FindUserByRole(roles.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, landlord.ID, found.ID)

	_, err = repo.FindUserByRole(roles.RoleSuperAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAttachment_RequiresMessage(t *testing.T) {
	db, repo := newTestRepo(t)

	tenant := createTestUser(t, db, "auth0|tenant1", "Tina Tenant", "tina@example.com", "", "tenant")
	thread := &models.Thread{OrganizationID: 1, Subject: "Test"}
	require.NoError(t, repo.CreateThread(thread, []models.Participant{{UserID: tenant.ID, Role: tenant.Role}}))
	message := &models.Message{ThreadID: thread.ID, SenderID: tenant.ID, Body: "See attached"}
	require.NoError(t, repo.CreateMessage(message))

	err := repo.CreateAttachment(&models.Attachment{MessageID: 404, FileS3Key: "attachments/x.pdf", FileName: "x.pdf"})
	assert.ErrorIs(t, err, ErrNotFound)

	attachment := &models.Attachment{
		MessageID: message.ID,
		FileS3Key: "attachments/lease.pdf",
		FileType:  "application/pdf",
		FileName:  "lease.pdf",
	}
	require.NoError(t, repo.CreateAttachment(attachment))

	messages, err := repo.ListMessages(thread.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Len(t, messages[0].Attachments, 1)
	assert.Equal(t, "lease.pdf", messages[0].Attachments[0].FileName)
}
