package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"teamhub/docstore"
	"teamhub/model"
	"teamhub/syncer"
)

// SeedMember is one account of a seed roster. Password is plaintext here
// and hashed before it is stored.
type SeedMember struct {
	Name           string `yaml:"name"`
	Role           string `yaml:"role"`
	Specialization string `yaml:"specialization"`
	IsLeader       bool   `yaml:"isLeader"`
	Password       string `yaml:"password"`
}

// DefaultRoster is the founding team.
var DefaultRoster = []SeedMember{
	{"Pranava Kumar", "Team Lead & Integration Manager", "IT", true, "Pranava123"},
	{"Arun Kumar", "Robotics Engineer", "Robotics", false, "Arun123"},
	{"Mohana Divya", "Electronics & Communication Engineer", "ECE", false, "Mohana123"},
	{"Dinesh Kumar", "Software Engineer", "CSE", false, "Dinesh123"},
	{"Hitarthi Sharma", "Biotechnology Specialist", "Biotechnology", false, "Hitarthi123"},
}

var seedEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func seedTasks(now time.Time) []model.Task {
	leaf := func(id, title, assignee, phase string, status model.TaskStatus, progress int) model.Task {
		return model.Task{
			ID: id, Title: title, AssignedTo: assignee, Status: status, Priority: model.PriorityHigh,
			Progress: progress, Phase: phase, CreatedAt: seedEpoch, UpdatedAt: now,
		}
	}
	phase := func(n int, title, assignee string, priority model.TaskPriority, subs ...model.Task) model.Task {
		return model.Task{
			ID:         fmt.Sprintf("phase-%d", n),
			Title:      fmt.Sprintf("Phase %d: %s", n, title),
			AssignedTo: assignee,
			Status:     model.StatusToDo,
			Priority:   priority,
			Phase:      fmt.Sprintf("Phase %d", n),
			SubTasks:   subs,
			CreatedAt:  seedEpoch,
			UpdatedAt:  now,
		}
	}
	// subtask assignees are slugs of DefaultRoster names
	return []model.Task{
		phase(1, "Foundational Research & System Architecture", "pranava-kumar", model.PriorityHigh,
			leaf("task-1-1", "Deep Dive & Mission Scenario Mapping", "pranava-kumar", "Phase 1", model.StatusCompleted, 100),
			leaf("task-1-2", "Precision Agriculture Research & Application Strategy", "hitarthi-sharma", "Phase 1", model.StatusInProgress, 50),
			leaf("task-1-3", "Finalize High-Level System Architecture", "pranava-kumar", "Phase 1", model.StatusToDo, 0),
		),
		phase(2, "Detailed Design & Procurement", "arun-kumar", model.PriorityHigh,
			leaf("task-2-1", "Detailed CAD Modeling", "arun-kumar", "Phase 2", model.StatusToDo, 0),
			leaf("task-2-2", "Detailed Electrical Schematics & Wiring Plan", "mohana-divya", "Phase 2", model.StatusToDo, 0),
			leaf("task-2-3", "Finalize Component Procurement", "hitarthi-sharma", "Phase 2", model.StatusToDo, 0),
			leaf("task-2-4", "Detailed Software Architecture & Module Planning", "dinesh-kumar", "Phase 2", model.StatusToDo, 0),
		),
		phase(3, "Prototyping & Assembly", "arun-kumar", model.PriorityHigh),
		phase(4, "Software Development & Integration", "dinesh-kumar", model.PriorityMedium),
		phase(5, "Testing & Refinement", "arun-kumar", model.PriorityMedium),
		phase(6, "Documentation & Presentation Preparation", "hitarthi-sharma", model.PriorityMedium),
		phase(7, "Final Competition Execution", "pranava-kumar", model.PriorityLow),
	}
}

var seedDocuments = []model.Document{
	{
		ID:          "doc-1",
		Title:       "NIDAR Competition Rulebook",
		Category:    "Competition",
		Description: "Official rulebook and guidelines for the NIDAR drone competition",
		FileName:    "NIDAR_Rulebook_2024.pdf",
		FileSize:    "2.5 MB",
		UploadedBy:  "System",
		UploadedAt:  seedEpoch,
		FileType:    "application/pdf",
	},
}

// SeedResult counts what Seed wrote. Records that already existed are
// left untouched and not counted.
type SeedResult struct {
	Users     int
	Tasks     int
	Documents int
}

// ParseRoster reads a YAML list of members. Members without a role or
// specialization get the registration defaults.
func ParseRoster(data []byte) ([]SeedMember, error) {
	var roster []SeedMember
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	for i, m := range roster {
		if strings.TrimSpace(m.Name) == "" || m.Password == "" {
			return nil, fmt.Errorf("parse roster: member %d needs a name and a password", i+1)
		}
		if m.Role == "" {
			roster[i].Role = defaultRole
		}
		if m.Specialization == "" {
			roster[i].Specialization = defaultSpecialization
		}
	}
	return roster, nil
}

// Seed writes the roster, the rulebook entry and, with withTasks, the phase
// plan. Records whose ids already exist are kept as they are.
func (s *Service) Seed(ctx context.Context, roster []SeedMember, withTasks bool) (SeedResult, error) {
	var res SeedResult
	now := s.Now()
	for _, su := range roster {
		hash, err := HashPassword(su.Password)
		if err != nil {
			return res, err
		}
		u := model.User{
			ID:             model.Slug(su.Name),
			Name:           su.Name,
			Role:           su.Role,
			Specialization: su.Specialization,
			IsLeader:       su.IsLeader,
			PasswordHash:   hash,
			CreatedAt:      now,
		}
		created, err := s.createOnce(ctx, docstore.CollectionUsers, u.ID, syncer.EncodeUser(u))
		if err != nil {
			return res, err
		}
		if created {
			res.Users++
		}
	}
	for _, d := range seedDocuments {
		created, err := s.createOnce(ctx, docstore.CollectionDocuments, d.ID, syncer.EncodeDocument(d))
		if err != nil {
			return res, err
		}
		if created {
			res.Documents++
		}
	}
	if withTasks {
		for _, t := range seedTasks(now) {
			created, err := s.createOnce(ctx, docstore.CollectionTasks, t.ID, syncer.EncodeTask(t))
			if err != nil {
				return res, err
			}
			if created {
				res.Tasks++
			}
		}
	}
	return res, nil
}

func (s *Service) createOnce(ctx context.Context, collection, id string, data map[string]interface{}) (bool, error) {
	err := s.remote.Create(ctx, collection, id, data)
	if errors.Is(err, docstore.ErrAlreadyExists) {
		log.Printf("seed %s/%s: already present", collection, id)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed %s/%s: %w", collection, id, err)
	}
	return true, nil
}
