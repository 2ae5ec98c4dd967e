package services

import (
	"context"
	"testing"
)

func TestParseRoster(t *testing.T) {
	roster, err := ParseRoster([]byte(`
- name: Kavya Rao
  password: Kavya123
  isLeader: true
- name: Ravi Teja
  role: Pilot
  password: Ravi123
`))
	if err != nil {
		t.Fatalf("ParseRoster() error = %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("roster = %+v", roster)
	}
	if !roster[0].IsLeader || roster[0].Role != "Team Member" || roster[0].Specialization != "General" {
		t.Fatalf("defaults not applied: %+v", roster[0])
	}
	if roster[1].Role != "Pilot" {
		t.Fatalf("role = %q", roster[1].Role)
	}

	if _, err := ParseRoster([]byte("- name: No Password\n")); err == nil {
		t.Fatal("expected error for member without password")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	h := newHarness(t)
	roster := []SeedMember{
		{Name: "Pranava Kumar", Role: "Team Lead", Specialization: "IT", IsLeader: true, Password: "Pranava123"},
		{Name: "Arun Kumar", Role: "Robotics Engineer", Specialization: "Robotics", Password: "Arun123"},
	}

	res, err := h.svc.Seed(context.Background(), roster, true)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if res.Users != 2 || res.Documents != 1 || res.Tasks != 7 {
		t.Fatalf("first seed = %+v", res)
	}

	session, ok := h.svc.Login("Pranava Kumar", "Pranava123")
	if !ok || !session.CurrentUser.IsLeader {
		t.Fatalf("seeded leader cannot log in: %+v", session)
	}
	phase1 := h.task(t, "phase-1")
	if len(phase1.SubTasks) != 3 {
		t.Fatalf("phase-1 subtasks = %d", len(phase1.SubTasks))
	}

	res, err = h.svc.Seed(context.Background(), roster, true)
	if err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	if res != (SeedResult{}) {
		t.Fatalf("second seed wrote %+v", res)
	}
}

func TestDefaultRosterHasOneLeader(t *testing.T) {
	leaders := 0
	for _, m := range DefaultRoster {
		if m.IsLeader {
			leaders++
		}
	}
	if len(DefaultRoster) != 5 || leaders != 1 {
		t.Fatalf("roster size %d with %d leaders", len(DefaultRoster), leaders)
	}
}
