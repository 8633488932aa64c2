package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
)

func TestSkillCreate(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := NewSkillService(db, rm)

	skill, err := s.Create(context.Background(), CreateSkillInput{
		OwnerID:        "u1",
		Title:          "  Spanish conversation  ",
		Category:       "languages",
		CreditsPerHour: 4,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if skill.Title != "Spanish conversation" {
		t.Fatalf("title not trimmed: %q", skill.Title)
	}
	if !skill.Active {
		t.Fatalf("new skill should be active")
	}
}

func TestSkillCreate_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewSkillService(db, newFakeRepoManager())

	cases := []struct {
		name string
		in   CreateSkillInput
	}{
		{"empty title", CreateSkillInput{OwnerID: "u1", CreditsPerHour: 1}},
		{"blank title", CreateSkillInput{OwnerID: "u1", Title: "   ", CreditsPerHour: 1}},
		{"zero rate", CreateSkillInput{OwnerID: "u1", Title: "x"}},
		{"negative rate", CreateSkillInput{OwnerID: "u1", Title: "x", CreditsPerHour: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), tc.in)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("want ErrorValidation, got %v", err)
			}
		})
	}
}

func TestSkillSetActive_OwnerOnly(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	rm.sk = newFakeSkillsRepo(&models.Skill{ID: "s1", OwnerID: "u1", Title: "x", Active: true})
	s := NewSkillService(db, rm)

	if err := s.SetActive(context.Background(), "s1", "u1", false); err != nil {
		t.Fatalf("SetActive error: %v", err)
	}
	if rm.sk.skills["s1"].Active {
		t.Fatalf("skill still active")
	}

	if err := s.SetActive(context.Background(), "s1", "intruder", true); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound for non-owner, got %v", err)
	}
}

func TestSkillListActive(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	rm.sk = newFakeSkillsRepo(
		&models.Skill{ID: "s1", OwnerID: "u1", Title: "a", Active: true},
		&models.Skill{ID: "s2", OwnerID: "u1", Title: "b", Active: false},
		&models.Skill{ID: "s3", OwnerID: "u2", Title: "c", Active: true},
	)
	s := NewSkillService(db, rm)

	active, err := s.ListActive(context.Background())
	if err != nil || len(active) != 2 {
		t.Fatalf("ListActive: n=%d err=%v", len(active), err)
	}

	mine, err := s.ListByOwner(context.Background(), "u1")
	if err != nil || len(mine) != 2 {
		t.Fatalf("ListByOwner: n=%d err=%v", len(mine), err)
	}
}
