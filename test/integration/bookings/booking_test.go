package bookings

import (
	"fmt"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"roomly/pkg/client"
	"roomly/test/integration/testutil"
)

// These tests exercise a running service end to end. Point
// TEST_SERVER_URL at it and MONGO_URI at its database; without
// TEST_SERVER_URL the whole package is skipped.

var (
	bookingClient *client.BookingClient
	userClient    *client.UserClient
	roomClient    *client.RoomClient
	mongoHelper   *testutil.MongoHelper
)

func TestMain(m *testing.M) {
	serverURL := os.Getenv("TEST_SERVER_URL")
	if serverURL == "" {
		fmt.Println("TEST_SERVER_URL not set, skipping integration tests")
		os.Exit(0)
	}

	bookingClient = client.NewBookingClient(serverURL)
	userClient = client.NewUserClient(serverURL)
	roomClient = client.NewRoomClient(serverURL)

	if err := client.NewHttpClient(serverURL).WaitForHealthy(30 * time.Second); err != nil {
		fmt.Printf("service not healthy: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func setupHelper(t *testing.T) *testutil.MongoHelper {
	t.Helper()
	if mongoHelper == nil {
		mongoHelper = testutil.NewMongoHelper(t, os.Getenv("MONGO_URI"), os.Getenv("MONGO_DATABASE_NAME"))
	}
	mongoHelper.CleanCollection(t, testutil.BookingsCollection)
	mongoHelper.CleanCollection(t, testutil.BookingLocksCollection)
	return mongoHelper
}

func seedDirectory(t *testing.T) (userID, roomID string) {
	t.Helper()
	h := setupHelper(t)
	userID = h.SeedUser(t, "Integration Guest", fmt.Sprintf("guest-%d@example.com", time.Now().UnixNano()))
	roomID = h.SeedRoom(t, "Garden Suite", "suite", 210, 4)
	return userID, roomID
}

func bookingBody(userID, roomID, checkIn, checkOut string) map[string]any {
	return map[string]any{
		"userId":       userID,
		"roomId":       roomID,
		"checkInDate":  checkIn,
		"checkOutDate": checkOut,
		"guests":       2,
		"totalPrice":   420,
	}
}

func TestBookFreeRoom(t *testing.T) {
	userID, roomID := seedDirectory(t)

	resp, err := bookingClient.Create(bookingBody(userID, roomID, "2030-06-01", "2030-06-05"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body: %s)", resp.StatusCode, http.StatusCreated, resp.Body)
	}

	message, booking, err := bookingClient.DecodeCreated(resp)
	if err != nil {
		t.Fatalf("DecodeCreated: %v", err)
	}
	if message != "Room booked successfully!" {
		t.Errorf("message = %q, want %q", message, "Room booked successfully!")
	}
	if booking.ID == "" {
		t.Error("expected booking ID in response")
	}
	if booking.CheckInDate.String() != "2030-06-01" {
		t.Errorf("checkInDate = %q, want %q", booking.CheckInDate.String(), "2030-06-01")
	}

	getResp, err := bookingClient.GetByID(booking.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("GetByID status = %d, want %d", getResp.StatusCode, http.StatusOK)
	}
}

func TestBookUnknownUser(t *testing.T) {
	_, roomID := seedDirectory(t)

	resp, err := bookingClient.Create(bookingBody("665f1f77bcf86cd799439999", roomID, "2030-06-01", "2030-06-05"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	if resp.Message() != "User not found!" {
		t.Errorf("message = %q, want %q", resp.Message(), "User not found!")
	}
}

func TestBookUnknownRoom(t *testing.T) {
	userID, _ := seedDirectory(t)

	resp, err := bookingClient.Create(bookingBody(userID, "665f1f77bcf86cd799439999", "2030-06-01", "2030-06-05"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	if resp.Message() != "Room not found!" {
		t.Errorf("message = %q, want %q", resp.Message(), "Room not found!")
	}
}

func TestBookConflictingDates(t *testing.T) {
	userID, roomID := seedDirectory(t)

	first, err := bookingClient.Create(bookingBody(userID, roomID, "2030-06-01", "2030-06-05"))
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("first status = %d, want %d", first.StatusCode, http.StatusCreated)
	}

	overlapping := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"inside existing stay", "2030-06-02", "2030-06-04"},
		{"check-in on existing check-out", "2030-06-05", "2030-06-09"},
		{"check-out on existing check-in", "2030-05-28", "2030-06-01"},
	}

	for _, tt := range overlapping {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := bookingClient.Create(bookingBody(userID, roomID, tt.checkIn, tt.checkOut))
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
			if resp.Message() != "Room already booked for selected dates!" {
				t.Errorf("message = %q, want %q", resp.Message(), "Room already booked for selected dates!")
			}
		})
	}

	// The adjacent day is outside the inclusive range and books fine.
	resp, err := bookingClient.Create(bookingBody(userID, roomID, "2030-06-06", "2030-06-09"))
	if err != nil {
		t.Fatalf("adjacent Create: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("adjacent status = %d, want %d (body: %s)", resp.StatusCode, http.StatusCreated, resp.Body)
	}
}

func TestBookSameSlotConcurrently(t *testing.T) {
	userID, roomID := seedDirectory(t)

	const attempts = 5
	statuses := make([]int, attempts)

	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			resp, err := bookingClient.Create(bookingBody(userID, roomID, "2030-07-01", "2030-07-05"))
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	created := 0
	for _, status := range statuses {
		if status == http.StatusCreated {
			created++
		}
	}
	if created != 1 {
		t.Errorf("created = %d bookings for the same slot, want exactly 1 (statuses: %v)", created, statuses)
	}

	if count := mongoHelper.CountDocuments(t, testutil.BookingsCollection); count != 1 {
		t.Errorf("stored bookings = %d, want 1", count)
	}
}

func TestBookMalformedBody(t *testing.T) {
	seedDirectory(t)

	resp, err := bookingClient.CreateRaw([]byte(`{"userId":`))
	if err != nil {
		t.Fatalf("CreateRaw: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestListBookings(t *testing.T) {
	userID, roomID := seedDirectory(t)

	for day := 1; day <= 3; day++ {
		checkIn := fmt.Sprintf("2030-08-%02d", day*4)
		checkOut := fmt.Sprintf("2030-08-%02d", day*4+2)
		resp, err := bookingClient.Create(bookingBody(userID, roomID, checkIn, checkOut))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d (body: %s)", resp.StatusCode, http.StatusCreated, resp.Body)
		}
	}

	resp, err := bookingClient.GetAll(2, 0)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var page struct {
		Data       []map[string]any `json:"data"`
		TotalCount int64            `json:"total_count"`
	}
	if err := resp.DecodeJSON(&page); err != nil {
		t.Fatalf("decoding page: %v", err)
	}
	if page.TotalCount != 3 {
		t.Errorf("total_count = %d, want 3", page.TotalCount)
	}
	if len(page.Data) != 2 {
		t.Errorf("len(data) = %d, want 2 (limit)", len(page.Data))
	}
}
