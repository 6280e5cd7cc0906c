package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"skillswap/api"
	"skillswap/internal/models"
	"skillswap/pkg/repository/mock"
)

func TestAuthHandlers(t *testing.T) {
	secret := "testsecret"
	tokenDur := 1 * time.Hour

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		prepare    func(m *mock.Mocks)
		wantStatus int
		checkBody  func(t *testing.T, m *mock.Mocks, body []byte)
	}{
		{
			name:       "Signup_InvalidRequest",
			method:     http.MethodPost,
			path:       "/signup",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_MissingFields_Name",
			method:     http.MethodPost,
			path:       "/signup",
			body:       map[string]string{"email": "alice@example.com", "password": "s3cret1"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_InvalidEmail",
			method:     http.MethodPost,
			path:       "/signup",
			body:       map[string]string{"name": "Alice", "email": "not-an-email", "password": "s3cret1"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_ShortPassword",
			method:     http.MethodPost,
			path:       "/signup",
			body:       map[string]string{"name": "Alice", "email": "alice@example.com", "password": "abc"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_AdminRoleRejected",
			method:     http.MethodPost,
			path:       "/signup",
			body:       map[string]string{"name": "Eve", "email": "eve@example.com", "password": "s3cret1", "role": "admin"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signup_ClientSuccess",
			method:     http.MethodPost,
			path:       "/signup",
			body:       map[string]string{"name": "Alice", "email": "alice@example.com", "password": "s3cret1"},
			wantStatus: http.StatusCreated,
			checkBody: func(t *testing.T, m *mock.Mocks, b []byte) {
				var ar struct {
					Success bool   `json:"success"`
					Token   string `json:"token"`
					User    struct {
						Role models.Role `json:"role"`
					} `json:"user"`
				}
				if err := json.Unmarshal(b, &ar); err != nil {
					t.Fatalf("unmarshal response: %v", err)
				}
				if !ar.Success || ar.Token == "" {
					t.Fatalf("unexpected response: %s", string(b))
				}
				if ar.User.Role != models.RoleClient {
					t.Fatalf("default role should be client, got %s", ar.User.Role)
				}
				if _, err := jwt.Parse(ar.Token, func(token *jwt.Token) (any, error) { return []byte(secret), nil }); err != nil {
					t.Fatalf("invalid token: %v", err)
				}
				if m.Profiles.Stored != nil {
					t.Fatalf("client signup must not create a freelancer profile")
				}
			},
		},
		{
			name:       "Signup_FreelancerCreatesProfile",
			method:     http.MethodPost,
			path:       "/signup",
			body:       map[string]string{"name": "Fred", "email": "fred@example.com", "password": "s3cret1", "role": "freelancer"},
			wantStatus: http.StatusCreated,
			checkBody: func(t *testing.T, m *mock.Mocks, b []byte) {
				if m.Profiles.Stored == nil {
					t.Fatalf("freelancer signup must create an empty profile")
				}
				if m.Profiles.Stored.UserID != 1 {
					t.Fatalf("profile linked to wrong user: %+v", m.Profiles.Stored)
				}
			},
		},
		{
			name:   "Signup_DuplicateEmail",
			method: http.MethodPost,
			path:   "/signup",
			body:   map[string]string{"name": "Dup", "email": "dup@example.com", "password": "s3cret1"},
			prepare: func(m *mock.Mocks) {
				m.Users.Stored = &models.User{ID: 9, Email: "dup@example.com", Role: models.RoleClient}
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "Signin_InvalidRequest",
			method:     http.MethodPost,
			path:       "/signin",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Signin_MissingUser",
			method:     http.MethodPost,
			path:       "/signin",
			body:       map[string]string{"email": "missing@example.com", "password": "nop"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "Signin_Success",
			method: http.MethodPost,
			path:   "/signin",
			body:   map[string]string{"email": "bob@example.com", "password": "hunter2"},
			prepare: func(m *mock.Mocks) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
				m.Users.Stored = &models.User{ID: 2, Email: "bob@example.com", Role: models.RoleFreelancer, PasswordHash: string(hash)}
			},
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, m *mock.Mocks, b []byte) {
				var ar struct {
					Token string `json:"token"`
				}
				if err := json.Unmarshal(b, &ar); err != nil {
					t.Fatalf("unmarshal token: %v", err)
				}
				token, err := jwt.Parse(ar.Token, func(token *jwt.Token) (any, error) { return []byte(secret), nil })
				if err != nil {
					t.Fatalf("invalid token: %v", err)
				}
				claims := token.Claims.(jwt.MapClaims)
				if claims["role"] != "freelancer" {
					t.Fatalf("token missing role claim: %v", claims)
				}
				if id, _ := claims["user_id"].(float64); int64(id) != 2 {
					t.Fatalf("token missing user_id claim: %v", claims)
				}
			},
		},
		{
			name:   "Signin_WrongPassword",
			method: http.MethodPost,
			path:   "/signin",
			body:   map[string]string{"email": "c@example.com", "password": "wrongpw"},
			prepare: func(m *mock.Mocks) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("rightpw"), bcrypt.DefaultCost)
				m.Users.Stored = &models.User{ID: 3, Email: "c@example.com", Role: models.RoleClient, PasswordHash: string(hash)}
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Signout_OK",
			method:     http.MethodPost,
			path:       "/signout",
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, m *mock.Mocks, b []byte) {
				if !bytes.Contains(b, []byte("signed out")) {
					t.Fatalf("unexpected body: %s", string(b))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(mocks)
			}
			handler := api.NewAuthHandler(mocks.Users, mocks.Profiles, secret, tokenDur)

			var bodyReader io.Reader
			if tt.body != nil {
				b, _ := json.Marshal(tt.body)
				bodyReader = bytes.NewReader(b)
			}
			req := httptest.NewRequest(tt.method, tt.path, bodyReader)
			w := httptest.NewRecorder()

			switch tt.path {
			case "/signup":
				handler.Signup(w, req)
			case "/signin":
				handler.Signin(w, req)
			case "/signout":
				handler.Signout(w, req)
			default:
				t.Fatalf("unknown path %s", tt.path)
			}

			res := w.Result()
			defer res.Body.Close()
			data, _ := io.ReadAll(res.Body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("%s: expected status %d got %d body=%s", tt.name, tt.wantStatus, res.StatusCode, string(data))
			}
			if tt.checkBody != nil {
				tt.checkBody(t, mocks, data)
			}
		})
	}
}
