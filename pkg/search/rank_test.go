package search

import "testing"

func TestRankDescendingStable(t *testing.T) {
	hits := []Result{
		{ID: "a", Category: CategoryTransfer, Score: 0.6},
		{ID: "b", Category: CategoryPerson, Score: 0.8},
		{ID: "c", Category: CategoryPerson, Score: 0.8},
		{ID: "d", Category: CategoryProperty, Score: 1.0},
		{ID: "e", Category: CategoryReference, Score: 0.7},
	}

	rank(hits)

	// No element scores higher than a preceding one.
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Fatalf("order violated at %d: %v after %v", i, hits[i].Score, hits[i-1].Score)
		}
	}

	if hits[0].ID != "d" {
		t.Errorf("expected highest score first, got %q", hits[0].ID)
	}
	// Stable: equal-score b before c.
	var first, second int
	for i, h := range hits {
		if h.ID == "b" {
			first = i
		}
		if h.ID == "c" {
			second = i
		}
	}
	if first > second {
		t.Errorf("stable sort violated: b at %d after c at %d", first, second)
	}
}

func TestGroupsAlphabeticalWithSortedMembers(t *testing.T) {
	results := &Results{
		Hits: []Result{
			{ID: "p1", Category: CategoryProperty, Score: 1.0},
			{ID: "u1", Category: CategoryPerson, Score: 0.8},
			{ID: "r1", Category: CategoryReference, Score: 0.7},
			{ID: "t1", Category: CategoryTransfer, Score: 0.6},
			{ID: "p2", Category: CategoryProperty, Score: 0.4},
		},
	}

	groups := results.Groups()
	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}

	// Groups ordered alphabetically by label, independent of score order.
	wantLabels := []string{"Person", "Property", "Reference Item", "Transfer"}
	for i, g := range groups {
		if g.Label != wantLabels[i] {
			t.Errorf("group %d: expected label %q, got %q", i, wantLabels[i], g.Label)
		}
	}

	// Members inside a group keep relevance order.
	var propertyGroup *Group
	for i := range groups {
		if groups[i].Category == CategoryProperty {
			propertyGroup = &groups[i]
		}
	}
	if propertyGroup == nil {
		t.Fatal("missing property group")
	}
	if propertyGroup.Results[0].ID != "p1" || propertyGroup.Results[1].ID != "p2" {
		t.Errorf("property group order: %+v", propertyGroup.Results)
	}
}

func TestGroupsEmptyCategoriesOmitted(t *testing.T) {
	results := &Results{
		Hits: []Result{
			{ID: "u1", Category: CategoryPerson, Score: 0.8},
		},
	}
	groups := results.Groups()
	if len(groups) != 1 || groups[0].Category != CategoryPerson {
		t.Fatalf("expected single person group, got %+v", groups)
	}
}

func TestCategoryLabelAndValid(t *testing.T) {
	if CategoryReference.Label() != "Reference Item" {
		t.Errorf("label: got %q", CategoryReference.Label())
	}
	if !CategoryProperty.Valid() {
		t.Error("property should be valid")
	}
	if Category("bogus").Valid() {
		t.Error("bogus should not be valid")
	}
}
