package search

import (
	"testing"
	"time"

	"job-portal/internal/domain/job"

	"github.com/google/uuid"
)

func TestNormalizeQuery(t *testing.T) {
	cases := map[string]string{
		"  Senior   GoLang  ": "senior golang",
		"node.js":             "node js",
		"C++":                 "c++",
		"":                    "",
	}
	for in, want := range cases {
		if got := NormalizeQuery(in); got != want {
			t.Fatalf("NormalizeQuery(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProcessQuery_KeepsRawKeyword(t *testing.T) {
	q := ProcessQuery("  Node.JS ")
	if q.Keyword != "node.js" {
		t.Fatalf("expected raw keyword node.js, got %q", q.Keyword)
	}
}

func TestExpandQuery_AddsSynonyms(t *testing.T) {
	got := ExpandQuery("golang developer")
	if len(got) != 2 || got[0] != "golang developer" || got[1] != "go developer" {
		t.Fatalf("unexpected variants: %v", got)
	}

	got = ExpandQuery("k8s")
	if len(got) != 2 || got[1] != "kubernetes" {
		t.Fatalf("unexpected variants: %v", got)
	}
}

func TestRankJobs_TitleBeatsDescription(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	posted := now.Add(-2 * time.Hour)

	inDesc := job.Job{ID: uuid.New(), Title: "Engineer", Description: "we use golang", PostedAt: posted}
	inTitle := job.Job{ID: uuid.New(), Title: "Golang Engineer", Description: "backend", PostedAt: posted}

	out := RankJobs([]job.Job{inDesc, inTitle}, ProcessQuery("golang").Variants, now)
	if out[0].ID != inTitle.ID {
		t.Fatalf("expected title match first")
	}
}

func TestRankJobs_NoVariantsKeepsOrder(t *testing.T) {
	a := job.Job{ID: uuid.New()}
	b := job.Job{ID: uuid.New()}
	out := RankJobs([]job.Job{a, b}, nil, time.Now())
	if out[0].ID != a.ID || out[1].ID != b.ID {
		t.Fatalf("expected input order")
	}
}

func TestSynonymGroupsAreSymmetric(t *testing.T) {
	for _, group := range synonymGroups {
		for _, term := range group {
			if len(synonyms[term]) != len(group)-1 {
				t.Fatalf("%s: expected %d synonyms, got %v", term, len(group)-1, synonyms[term])
			}
		}
	}
	if got := ExpandQuery("devops"); len(got) != 3 || got[2] != "sre" {
		t.Fatalf("unexpected variants: %v", got)
	}
}
