package services

import (
	"errors"
	"testing"

	"github.com/open-ecommerce/helptext-sub000/internal/models"
)

func TestParseCaseTag(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int64
	}{
		{"plain tag", "case#12# hello", 12},
		{"tag mid-sentence", "re your case#7# update", 7},
		{"no tag", "hello there", 0},
		{"empty digits", "case## hello", 0},
		{"first match wins", "case#3# and case#4#", 3},
		{"missing trailing hash", "case#12 hello", 0},
		{"digits overflow int64", "case#99999999999999999999#", 0},
		{"empty body", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCaseTag(tt.body); got != tt.want {
				t.Errorf("ParseCaseTag(%q) = %d, want %d", tt.body, got, tt.want)
			}
		})
	}
}

func TestResolveOrCreateTaggedCase(t *testing.T) {
	openCase := &models.Case{
		ID:          7,
		ContactID:   4,
		PhoneNumber: "+15551212",
		HelperID:    9,
		State:       models.CaseStateOpen,
	}
	helperPhones := &mockHelperDirectory{
		getByIDFunc: func(id int64) (*models.Helper, error) {
			return &models.Helper{ID: id, PhoneNumber: "+19998888"}, nil
		},
	}

	t.Run("tag resolves to existing case", func(t *testing.T) {
		cases := &mockCaseStore{
			getByIDFunc: func(id int64) (*models.Case, error) {
				if id != 7 {
					t.Fatalf("looked up case %d, want 7", id)
				}
				return openCase, nil
			},
		}
		service := NewThreadService(cases, helperPhones, &mockHelperDirectory{})

		ctx, err := service.ResolveOrCreate(
			models.Identity{Kind: models.IdentityContact, ContactID: 4},
			"+15551212", "case#7# still waiting", 0,
		)
		if err != nil {
			t.Fatalf("ResolveOrCreate() error = %v", err)
		}
		if ctx.CaseID != 7 || !ctx.IsOpen {
			t.Errorf("ResolveOrCreate() = %+v, want open case 7", ctx)
		}
		if ctx.HelperPhone != "+19998888" {
			t.Errorf("helper phone = %q, want +19998888", ctx.HelperPhone)
		}
	})

	t.Run("explicit id wins over body tag", func(t *testing.T) {
		var lookedUp int64
		cases := &mockCaseStore{
			getByIDFunc: func(id int64) (*models.Case, error) {
				lookedUp = id
				return openCase, nil
			},
		}
		service := NewThreadService(cases, helperPhones, &mockHelperDirectory{})

		_, err := service.ResolveOrCreate(
			models.Identity{Kind: models.IdentityHelper, HelperID: 9},
			"+19998888", "case#3# reply", 7,
		)
		if err != nil {
			t.Fatalf("ResolveOrCreate() error = %v", err)
		}
		if lookedUp != 7 {
			t.Errorf("looked up case %d, want explicit id 7", lookedUp)
		}
	})

	t.Run("unresolvable tag behaves like no tag", func(t *testing.T) {
		cases := &mockCaseStore{
			getByIDFunc: func(int64) (*models.Case, error) { return nil, nil },
			getLatestByContactFunc: func(int64) (*models.Case, error) {
				return openCase, nil
			},
		}
		service := NewThreadService(cases, helperPhones, &mockHelperDirectory{})

		ctx, err := service.ResolveOrCreate(
			models.Identity{Kind: models.IdentityContact, ContactID: 4},
			"+15551212", "case#9999# hello", 0,
		)
		if err != nil {
			t.Fatalf("ResolveOrCreate() error = %v", err)
		}
		if ctx.CaseID != 7 {
			t.Errorf("case id = %d, want fallback to latest case 7", ctx.CaseID)
		}
	})

	t.Run("case store error propagates", func(t *testing.T) {
		cases := &mockCaseStore{
			getByIDFunc: func(int64) (*models.Case, error) {
				return nil, errors.New("store down")
			},
		}
		service := NewThreadService(cases, helperPhones, &mockHelperDirectory{})

		_, err := service.ResolveOrCreate(
			models.Identity{Kind: models.IdentityContact, ContactID: 4},
			"+15551212", "case#7# hi", 0,
		)
		if err == nil {
			t.Fatal("ResolveOrCreate() should propagate store errors")
		}
	})
}

func TestResolveOrCreateFirstContact(t *testing.T) {
	allocator := &mockHelperDirectory{
		nextAvailableFunc: func() (int64, error) { return 5, nil },
	}
	helperPhones := &mockHelperDirectory{
		getByIDFunc: func(id int64) (*models.Helper, error) {
			return &models.Helper{ID: id, PhoneNumber: "+19997777"}, nil
		},
	}

	t.Run("unknown sender creates a case", func(t *testing.T) {
		var createdFor string
		var assignedHelper int64
		cases := &mockCaseStore{
			createFirstContactFunc: func(phone string, helperID int64) (*models.Case, bool, error) {
				createdFor = phone
				assignedHelper = helperID
				return &models.Case{
					ID:          42,
					ContactID:   10,
					PhoneNumber: phone,
					HelperID:    helperID,
					State:       models.CaseStateOpen,
				}, true, nil
			},
		}
		service := NewThreadService(cases, helperPhones, allocator)

		ctx, err := service.ResolveOrCreate(
			models.Identity{Kind: models.IdentityUnknown},
			"+15551212", "help me", 0,
		)
		if err != nil {
			t.Fatalf("ResolveOrCreate() error = %v", err)
		}
		if createdFor != "+15551212" {
			t.Errorf("created for %q, want +15551212", createdFor)
		}
		if assignedHelper != 5 {
			t.Errorf("assigned helper %d, want allocator's pick 5", assignedHelper)
		}
		if !ctx.Created || ctx.CaseID != 42 || !ctx.IsOpen {
			t.Errorf("ResolveOrCreate() = %+v, want created open case 42", ctx)
		}
	})

	t.Run("allocator failure propagates", func(t *testing.T) {
		broken := &mockHelperDirectory{
			nextAvailableFunc: func() (int64, error) { return 0, errors.New("no helpers") },
		}
		service := NewThreadService(&mockCaseStore{}, helperPhones, broken)

		_, err := service.ResolveOrCreate(
			models.Identity{Kind: models.IdentityUnknown},
			"+15551212", "help me", 0,
		)
		if err == nil {
			t.Fatal("ResolveOrCreate() should fail when no helper can be allocated")
		}
	})

	t.Run("known contact without a case yields no case", func(t *testing.T) {
		cases := &mockCaseStore{
			getLatestByContactFunc: func(int64) (*models.Case, error) { return nil, nil },
		}
		service := NewThreadService(cases, helperPhones, allocator)

		ctx, err := service.ResolveOrCreate(
			models.Identity{Kind: models.IdentityContact, ContactID: 4},
			"+15551212", "hello?", 0,
		)
		if err != nil {
			t.Fatalf("ResolveOrCreate() error = %v", err)
		}
		if ctx.CaseID != 0 {
			t.Errorf("case id = %d, want 0 for contact without cases", ctx.CaseID)
		}
	})

	t.Run("helper without tag yields no case", func(t *testing.T) {
		service := NewThreadService(&mockCaseStore{}, helperPhones, allocator)

		ctx, err := service.ResolveOrCreate(
			models.Identity{Kind: models.IdentityHelper, HelperID: 9},
			"+19998888", "ok", 0,
		)
		if err != nil {
			t.Fatalf("ResolveOrCreate() error = %v", err)
		}
		if ctx.CaseID != 0 {
			t.Errorf("case id = %d, want 0 for untagged helper message", ctx.CaseID)
		}
	})
}
