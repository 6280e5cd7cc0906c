package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"skillswap/api"
	dbfs "skillswap/db"
	"skillswap/internal/config"
	"skillswap/internal/db"
	"skillswap/internal/models"
	"skillswap/internal/realtime"
)

func itox(id int64) string { return strconv.FormatInt(id, 10) }

func newTestServer(t *testing.T) (*httptest.Server, *realtime.MemoryBroker) {
	t.Helper()
	ctx := context.Background()
	conn, err := db.New(ctx, "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.Migrate(ctx, conn, dbfs.Migrations); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	cfg := &config.Config{
		Addr:          ":0",
		JWTSecret:     "testsecret",
		APITimeout:    5 * time.Second,
		TokenDuration: time.Hour,
		SweepInterval: time.Minute,
	}
	broker := realtime.NewMemoryBroker()
	srv := httptest.NewServer(api.SetupRoutes(cfg, "test", "now", conn, broker))
	t.Cleanup(srv.Close)
	return srv, broker
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	data, _ := io.ReadAll(res.Body)
	return res.StatusCode, data
}

func signupUser(t *testing.T, srv *httptest.Server, name, email, role string) string {
	t.Helper()
	status, body := doRequest(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": "s3cret1", "role": role,
	})
	if status != http.StatusCreated {
		t.Fatalf("signup %s: status %d body=%s", email, status, body)
	}
	var ar struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &ar); err != nil || ar.Token == "" {
		t.Fatalf("signup %s: bad response %s", email, body)
	}
	return ar.Token
}

func TestMarketplaceFlow(t *testing.T) {
	srv, broker := newTestServer(t)

	clientToken := signupUser(t, srv, "Cora", "cora@example.com", "client")
	fredToken := signupUser(t, srv, "Fred", "fred@example.com", "freelancer")
	ginaToken := signupUser(t, srv, "Gina", "gina@example.com", "freelancer")

	// client posts a project
	status, body := doRequest(t, srv, http.MethodPost, "/api/projects", clientToken, map[string]any{
		"title":       "Ship a REST API",
		"description": "CRUD plus auth",
		"deadline":    time.Now().Add(72 * time.Hour).UnixMilli(),
	})
	if status != http.StatusCreated {
		t.Fatalf("create project: status %d body=%s", status, body)
	}
	var created struct {
		Project models.Project `json:"project"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("unmarshal project: %v", err)
	}
	projectID := created.Project.ID

	// both freelancers bid
	events := broker.Subscribe()
	bidPath := "/api/projects/" + itox(projectID) + "/bids"
	status, body = doRequest(t, srv, http.MethodPost, bidPath, fredToken, map[string]any{"amount": 500.0, "message": "can start monday"})
	if status != http.StatusCreated {
		t.Fatalf("fred bid: status %d body=%s", status, body)
	}
	var fredBid struct {
		Bid models.Bid `json:"bid"`
	}
	if err := json.Unmarshal(body, &fredBid); err != nil {
		t.Fatalf("unmarshal bid: %v", err)
	}
	if status, body = doRequest(t, srv, http.MethodPost, bidPath, ginaToken, map[string]any{"amount": 450.0}); status != http.StatusCreated {
		t.Fatalf("gina bid: status %d body=%s", status, body)
	}

	select {
	case ev := <-events:
		if ev.Topic != "bid.placed" {
			t.Errorf("expected bid.placed event got %s", ev.Topic)
		}
	case <-time.After(time.Second):
		t.Error("no bid.placed event broadcast")
	}

	status, body = doRequest(t, srv, http.MethodGet, bidPath, "", nil)
	if status != http.StatusOK {
		t.Fatalf("list bids: status %d body=%s", status, body)
	}
	var listed struct {
		Bids []models.Bid `json:"bids"`
	}
	if err := json.Unmarshal(body, &listed); err != nil || len(listed.Bids) != 2 {
		t.Fatalf("expected 2 bids, body=%s", body)
	}
	var ginaBid models.Bid
	for _, b := range listed.Bids {
		if b.ID != fredBid.Bid.ID {
			ginaBid = b
		}
	}

	// gina cannot edit fred's bid
	if status, body = doRequest(t, srv, http.MethodPut, "/api/projects/bid/"+itox(fredBid.Bid.ID), ginaToken, map[string]any{"amount": 1.0}); status != http.StatusForbidden {
		t.Fatalf("edit of foreign bid: expected 403 got %d body=%s", status, body)
	}

	// client counters gina's bid; bad amounts and other clients are refused
	counterPath := "/api/projects/bid/" + itox(ginaBid.ID) + "/counter"
	if status, body = doRequest(t, srv, http.MethodPut, counterPath, clientToken, map[string]any{"counterAmount": -5.0}); status != http.StatusBadRequest {
		t.Fatalf("negative counter: expected 400 got %d body=%s", status, body)
	}
	danaToken := signupUser(t, srv, "Dana", "dana@example.com", "client")
	if status, body = doRequest(t, srv, http.MethodPut, counterPath, danaToken, map[string]any{"counterAmount": 400.0}); status != http.StatusForbidden {
		t.Fatalf("counter by non-owner: expected 403 got %d body=%s", status, body)
	}
	status, body = doRequest(t, srv, http.MethodPut, counterPath, clientToken, map[string]any{"counterAmount": 400.0})
	if status != http.StatusOK {
		t.Fatalf("counter bid: status %d body=%s", status, body)
	}
	var countered struct {
		Bid models.Bid `json:"bid"`
	}
	if err := json.Unmarshal(body, &countered); err != nil {
		t.Fatalf("unmarshal counter: %v", err)
	}
	if !countered.Bid.Countered || countered.Bid.CounterAmount == nil || *countered.Bid.CounterAmount != 400.0 {
		t.Fatalf("counter not recorded: %+v", countered.Bid)
	}
	if countered.Bid.Status != models.BidPending {
		t.Fatalf("counter must not change bid status, got %s", countered.Bid.Status)
	}

	// client accepts fred's bid, naming it in the body
	acceptPath := "/api/projects/accept-bid/" + itox(projectID)
	if status, body = doRequest(t, srv, http.MethodPut, acceptPath, clientToken, map[string]any{}); status != http.StatusBadRequest {
		t.Fatalf("accept without bid: expected 400 got %d body=%s", status, body)
	}
	status, body = doRequest(t, srv, http.MethodPut, acceptPath, clientToken, map[string]any{
		"bidId": fredBid.Bid.ID, "freelancerId": fredBid.Bid.FreelancerID,
	})
	if status != http.StatusOK {
		t.Fatalf("accept bid: status %d body=%s", status, body)
	}
	var accepted struct {
		Project models.Project `json:"project"`
		Bid     models.Bid     `json:"bid"`
	}
	if err := json.Unmarshal(body, &accepted); err != nil {
		t.Fatalf("unmarshal accept: %v", err)
	}
	if accepted.Project.Status != models.ProjectInProgress {
		t.Fatalf("expected in-progress project got %s", accepted.Project.Status)
	}
	if accepted.Bid.ID != fredBid.Bid.ID {
		t.Fatalf("accepted bid %d, expected the one named in the body (%d)", accepted.Bid.ID, fredBid.Bid.ID)
	}
	if accepted.Project.FreelancerID == nil || *accepted.Project.FreelancerID != fredBid.Bid.FreelancerID {
		t.Fatalf("project not assigned to winner: %+v", accepted.Project)
	}

	// a second accept naming the losing bid conflicts
	if status, body = doRequest(t, srv, http.MethodPut, acceptPath, clientToken, map[string]any{
		"bidId": ginaBid.ID, "freelancerId": ginaBid.FreelancerID,
	}); status != http.StatusConflict {
		t.Fatalf("late accept: expected 409 got %d body=%s", status, body)
	}

	// bidding on the settled project is refused
	if status, body = doRequest(t, srv, http.MethodPost, bidPath, ginaToken, map[string]any{"amount": 425.0}); status != http.StatusBadRequest {
		t.Fatalf("bid on settled project: expected 400 got %d body=%s", status, body)
	}

	// fred reports progress, client completes and reviews
	progressPath := "/api/projects/" + itox(projectID) + "/progress"
	if status, body = doRequest(t, srv, http.MethodPut, progressPath, fredToken, map[string]int{"progress": 60}); status != http.StatusOK {
		t.Fatalf("progress: status %d body=%s", status, body)
	}
	if status, body = doRequest(t, srv, http.MethodPut, progressPath, fredToken, map[string]int{"progress": 150}); status != http.StatusBadRequest {
		t.Fatalf("out-of-range progress: expected 400 got %d body=%s", status, body)
	}
	if status, body = doRequest(t, srv, http.MethodPut, progressPath, ginaToken, map[string]int{"progress": 10}); status != http.StatusForbidden {
		t.Fatalf("progress by non-assignee: expected 403 got %d body=%s", status, body)
	}

	completePath := "/api/projects/" + itox(projectID) + "/mark-complete"
	if status, body = doRequest(t, srv, http.MethodPut, completePath, clientToken, nil); status != http.StatusOK {
		t.Fatalf("mark complete: status %d body=%s", status, body)
	}

	status, body = doRequest(t, srv, http.MethodPost, "/api/reviews", clientToken, map[string]any{
		"projectId": projectID, "rating": 5, "comment": "flawless",
	})
	if status != http.StatusCreated {
		t.Fatalf("review: status %d body=%s", status, body)
	}
	if status, body = doRequest(t, srv, http.MethodPost, "/api/reviews", clientToken, map[string]any{
		"projectId": projectID, "rating": 4,
	}); status != http.StatusConflict {
		t.Fatalf("second review: expected 409 got %d body=%s", status, body)
	}

	// fred's notifications include the bid acceptance
	status, body = doRequest(t, srv, http.MethodGet, "/api/notifications", fredToken, nil)
	if status != http.StatusOK {
		t.Fatalf("notifications: status %d body=%s", status, body)
	}
	var notes struct {
		Notifications []models.Notification `json:"notifications"`
	}
	if err := json.Unmarshal(body, &notes); err != nil || len(notes.Notifications) == 0 {
		t.Fatalf("expected notifications for fred, body=%s", body)
	}
}

func TestPlaceBid_WithoutProfile(t *testing.T) {
	srv, _ := newTestServer(t)

	clientToken := signupUser(t, srv, "Cora", "cora@example.com", "client")
	hankToken := signupUser(t, srv, "Hank", "hank@example.com", "freelancer")

	status, body := doRequest(t, srv, http.MethodPost, "/api/projects", clientToken, map[string]any{
		"title":       "Logo refresh",
		"description": "vector files included",
		"deadline":    time.Now().Add(48 * time.Hour).UnixMilli(),
	})
	if status != http.StatusCreated {
		t.Fatalf("create project: status %d body=%s", status, body)
	}
	var created struct {
		Project models.Project `json:"project"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("unmarshal project: %v", err)
	}

	if status, body = doRequest(t, srv, http.MethodDelete, "/api/freelancers/profile", hankToken, nil); status != http.StatusOK {
		t.Fatalf("delete profile: status %d body=%s", status, body)
	}
	bidPath := "/api/projects/" + itox(created.Project.ID) + "/bids"
	if status, body = doRequest(t, srv, http.MethodPost, bidPath, hankToken, map[string]any{"amount": 100.0}); status != http.StatusNotFound {
		t.Fatalf("bid without profile: expected 404 got %d body=%s", status, body)
	}
}

func TestRoleGating(t *testing.T) {
	srv, _ := newTestServer(t)

	fredToken := signupUser(t, srv, "Fred", "fred@example.com", "freelancer")

	// freelancers cannot post projects
	status, _ := doRequest(t, srv, http.MethodPost, "/api/projects", fredToken, map[string]any{
		"title": "x", "description": "y", "deadline": time.Now().UnixMilli(),
	})
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", status)
	}

	// no token at all
	if status, _ := doRequest(t, srv, http.MethodGet, "/api/notifications", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", status)
	}

	// garbage token
	if status, _ := doRequest(t, srv, http.MethodGet, "/api/notifications", "garbage", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", status)
	}

	// public listing needs no auth
	if status, _ := doRequest(t, srv, http.MethodGet, "/api/projects", "", nil); status != http.StatusOK {
		t.Fatalf("expected 200 got %d", status)
	}

	// admin surface is closed to freelancers
	if status, _ := doRequest(t, srv, http.MethodGet, "/api/admin/analytics", fredToken, nil); status != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", status)
	}
}

func TestFreelancerProfileEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	fredToken := signupUser(t, srv, "Fred", "fred@example.com", "freelancer")

	// profile exists right after signup, empty
	status, body := doRequest(t, srv, http.MethodGet, "/api/freelancers/me", fredToken, nil)
	if status != http.StatusOK {
		t.Fatalf("me: status %d body=%s", status, body)
	}

	status, body = doRequest(t, srv, http.MethodGet, "/api/freelancers/profile/completeness", fredToken, nil)
	if status != http.StatusOK {
		t.Fatalf("completeness: status %d body=%s", status, body)
	}
	var comp struct {
		Completeness int `json:"completeness"`
	}
	if err := json.Unmarshal(body, &comp); err != nil || comp.Completeness != 0 {
		t.Fatalf("fresh profile should be 0%% complete, body=%s", body)
	}

	status, body = doRequest(t, srv, http.MethodPut, "/api/freelancers/profile", fredToken, map[string]any{
		"skills":    []string{"go", "sql"},
		"expertise": "backend",
	})
	if status != http.StatusOK {
		t.Fatalf("upsert: status %d body=%s", status, body)
	}

	status, body = doRequest(t, srv, http.MethodGet, "/api/freelancers/profile/completeness", fredToken, nil)
	if status != http.StatusOK {
		t.Fatalf("completeness: status %d body=%s", status, body)
	}
	if err := json.Unmarshal(body, &comp); err != nil || comp.Completeness != 50 {
		t.Fatalf("expected 50%% complete, body=%s", body)
	}

	// public listing shows the profile
	status, body = doRequest(t, srv, http.MethodGet, "/api/freelancers", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list freelancers: status %d body=%s", status, body)
	}
	var list struct {
		Freelancers []models.FreelancerProfile `json:"freelancers"`
	}
	if err := json.Unmarshal(body, &list); err != nil || len(list.Freelancers) != 1 {
		t.Fatalf("expected 1 freelancer, body=%s", body)
	}
}
