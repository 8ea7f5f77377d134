package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/models"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/services"
)

func TestPostMessageEndpoint(t *testing.T) {
	db, email, _ := setupMessagingTest(t)

	tenant := createUser(t, db, "auth0|tenant1", "Tina Tenant", "tina@example.com", "tenant")
	manager := createUser(t, db, "auth0|manager1", "Max Manager", "max@example.com", "manager")
	outsider := createUser(t, db, "auth0|outsider", "Olga Outsider", "olga@example.com", "tenant")

	thread := createThreadBetween(t, "Repairs", tenant, manager)

	tests := []struct {
		name           string
		auth0ID        string
		role           string
		threadID       string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name:     "Participant posts a message",
			auth0ID:  tenant.Auth0ID,
			role:     "tenant",
			threadID: fmt.Sprintf("%d", thread.ID),
			requestBody: map[string]interface{}{
				"body": "The faucet is dripping again.",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "The faucet is dripping again.", data["body"])
				assert.Equal(t, float64(tenant.ID), data["sender_id"])

				// Verify sender relationship is loaded
				sender := data["sender"].(map[string]interface{})
				assert.Equal(t, tenant.Email, sender["email"])
			},
		},
		{
			name:     "Non-participant is rejected",
			auth0ID:  outsider.Auth0ID,
			role:     "tenant",
			threadID: fmt.Sprintf("%d", thread.ID),
			requestBody: map[string]interface{}{
				"body": "This should fail",
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "FORBIDDEN",
		},
		{
			name:           "Fail with missing body",
			auth0ID:        tenant.Auth0ID,
			role:           "tenant",
			threadID:       fmt.Sprintf("%d", thread.ID),
			requestBody:    map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:     "Fail with whitespace-only body",
			auth0ID:  tenant.Auth0ID,
			role:     "tenant",
			threadID: fmt.Sprintf("%d", thread.ID),
			requestBody: map[string]interface{}{
				"body": "   ",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:     "Fail with missing thread",
			auth0ID:  tenant.Auth0ID,
			role:     "tenant",
			threadID: "9999",
			requestBody: map[string]interface{}{
				"body": "Hello?",
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "THREAD_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/threads/:id/messages",
				mockAuthMiddleware(tt.auth0ID, tt.role, "mock-token"),
				PostMessage,
			)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/threads/%s/messages", tt.threadID), bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			} else if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}

	// The successful post above notified the other participant.
	notifications, err := services.GetMessaging().Repo.ListNotificationsForUser(manager.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, notifications)
	assert.Len(t, email.Sent(), 1)
}

func TestMarkMessageReadEndpoint(t *testing.T) {
	db, _, _ := setupMessagingTest(t)

	tenant := createUser(t, db, "auth0|tenant1", "Tina Tenant", "tina@example.com", "tenant")
	manager := createUser(t, db, "auth0|manager1", "Max Manager", "max@example.com", "manager")
	outsider := createUser(t, db, "auth0|outsider", "Olga Outsider", "olga@example.com", "tenant")

	thread := createThreadBetween(t, "Repairs", tenant, manager)
	message, err := services.GetMessaging().Messages.PostMessage(thread.ID, tenant.ID, "Please confirm receipt")
	require.NoError(t, err)

	tests := []struct {
		name           string
		auth0ID        string
		role           string
		threadID       string
		messageID      string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Participant marks the message read",
			auth0ID:        manager.Auth0ID,
			role:           "manager",
			threadID:       fmt.Sprintf("%d", thread.ID),
			messageID:      fmt.Sprintf("%d", message.ID),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Marking again succeeds",
			auth0ID:        manager.Auth0ID,
			role:           "manager",
			threadID:       fmt.Sprintf("%d", thread.ID),
			messageID:      fmt.Sprintf("%d", message.ID),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Non-participant is rejected",
			auth0ID:        outsider.Auth0ID,
			role:           "tenant",
			threadID:       fmt.Sprintf("%d", thread.ID),
			messageID:      fmt.Sprintf("%d", message.ID),
			expectedStatus: http.StatusForbidden,
			expectedError:  "FORBIDDEN",
		},
		{
			name:           "Fail with missing message",
			auth0ID:        manager.Auth0ID,
			role:           "manager",
			threadID:       fmt.Sprintf("%d", thread.ID),
			messageID:      "9999",
			expectedStatus: http.StatusNotFound,
			expectedError:  "MESSAGE_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/threads/:id/messages/:messageId/read",
				mockAuthMiddleware(tt.auth0ID, tt.role, "mock-token"),
				MarkMessageRead,
			)

			req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/threads/%s/messages/%s/read", tt.threadID, tt.messageID), nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedError != "" {
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			}
		})
	}

	// Two successful calls left exactly one receipt.
	var count int64
	db.Model(&models.ReadReceipt{}).Where("message_id = ? AND user_id = ?", message.ID, manager.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
