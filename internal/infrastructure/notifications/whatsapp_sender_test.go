package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestNewWhatsAppSender(t *testing.T) {
	tests := []struct {
		name          string
		accessToken   string
		phoneNumberID string
		wantErr       bool
	}{
		{
			name:          "Valid credentials",
			accessToken:   "test_token",
			phoneNumberID: "123456789",
			wantErr:       false,
		},
		{
			name:          "Missing access token",
			accessToken:   "",
			phoneNumberID: "123456789",
			wantErr:       true,
		},
		{
			name:          "Missing phone number ID",
			accessToken:   "test_token",
			phoneNumberID: "",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("WHATSAPP_ACCESS_TOKEN", tt.accessToken)
			os.Setenv("WHATSAPP_PHONE_NUMBER_ID", tt.phoneNumberID)
			defer os.Unsetenv("WHATSAPP_ACCESS_TOKEN")
			defer os.Unsetenv("WHATSAPP_PHONE_NUMBER_ID")

			sender, err := NewWhatsAppSender()
			if (err != nil) != tt.wantErr {
				t.Errorf("NewWhatsAppSender() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && sender == nil {
				t.Error("NewWhatsAppSender() returned nil sender")
			}
		})
	}
}

func TestWhatsAppSender_SendText(t *testing.T) {
	tests := []struct {
		name           string
		to             string
		body           string
		mockStatusCode int
		mockResponse   apiResponse
		wantErr        bool
	}{
		{
			name:           "Successful text send",
			to:             "+2348001234567",
			body:           "Your consultation is confirmed",
			mockStatusCode: http.StatusOK,
			mockResponse: apiResponse{
				Messages: []struct {
					ID string `json:"id"`
				}{
					{ID: "wamid.text123"},
				},
			},
			wantErr: false,
		},
		{
			name:           "API error response",
			to:             "+2348001234567",
			body:           "Test message",
			mockStatusCode: http.StatusBadRequest,
			mockResponse:   apiResponse{},
			wantErr:        true,
		},
		{
			name:           "API rate limit error",
			to:             "+2348001234567",
			body:           "Test message",
			mockStatusCode: http.StatusTooManyRequests,
			mockResponse:   apiResponse{},
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != "POST" {
					t.Errorf("Expected POST request, got %s", r.Method)
				}
				if r.Header.Get("Content-Type") != "application/json" {
					t.Errorf("Expected Content-Type: application/json, got %s", r.Header.Get("Content-Type"))
				}
				if r.Header.Get("Authorization") != "Bearer test_token" {
					t.Errorf("Unexpected Authorization header: %s", r.Header.Get("Authorization"))
				}

				w.WriteHeader(tt.mockStatusCode)
				if err := json.NewEncoder(w).Encode(tt.mockResponse); err != nil {
					t.Errorf("failed to encode mock response: %v", err)
				}
			}))
			defer server.Close()

			sender := &WhatsAppSender{
				accessToken:   "test_token",
				phoneNumberID: "123456789",
				httpClient:    server.Client(),
				baseURL:       server.URL,
			}

			messageID, err := sender.SendText(context.Background(), tt.to, tt.body)

			if (err != nil) != tt.wantErr {
				t.Errorf("SendText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && messageID == "" {
				t.Error("SendText() returned empty message ID")
			}
		})
	}
}

func TestWhatsAppSender_SendText_NetworkError(t *testing.T) {
	sender := &WhatsAppSender{
		accessToken:   "test_token",
		phoneNumberID: "123456789",
		httpClient:    &http.Client{},
	}

	_, err := sender.SendText(context.Background(), "+2348001234567", "hello")
	if err == nil {
		t.Error("Expected network error, got nil")
	}
}

func TestWhatsAppSender_SendText_NoMessageID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(apiResponse{}); err != nil {
			t.Errorf("failed to encode mock response: %v", err)
		}
	}))
	defer server.Close()

	sender := &WhatsAppSender{
		accessToken:   "test_token",
		phoneNumberID: "123456789",
		baseURL:       server.URL,
		httpClient:    server.Client(),
	}

	_, err := sender.SendText(context.Background(), "+2348001234567", "Test")
	if err == nil {
		t.Error("Expected error for missing message ID, got nil")
	}
}
