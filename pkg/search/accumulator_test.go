package search

import (
	"strconv"
	"testing"

	"github.com/matst80/learn-finder/pkg/types"
)

func makeCourses(from, count int) []types.Resource {
	items := make([]types.Resource, count)
	for i := range count {
		items[i] = &types.Course{Id: from + i, Title: "course " + strconv.Itoa(from+i)}
	}
	return items
}

func ids(items []types.Resource) []string {
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = item.ObjectID()
	}
	return result
}

func TestAccumulateReplaces(t *testing.T) {
	prev := makeCourses(0, 30)
	page := &types.SearchResultPage{Items: makeCourses(100, 5), Total: 5}
	result := Accumulate(prev, page, 20, false)
	if len(result) != 5 {
		t.Fatalf("Expected full replace with 5 items, got %d", len(result))
	}
	if result[0].ObjectID() != "100" {
		t.Errorf("Expected first item to be 100, got %s", result[0].ObjectID())
	}
}

func TestAccumulateAppendsAtOffset(t *testing.T) {
	prev := makeCourses(0, 10)
	page := &types.SearchResultPage{Items: makeCourses(10, 10), Total: 100}
	result := Accumulate(prev, page, 10, true)
	if len(result) != 20 {
		t.Fatalf("Expected 20 items, got %d", len(result))
	}

	// the same page arriving twice must not duplicate
	again := Accumulate(result, page, 10, true)
	if len(again) != 20 {
		t.Fatalf("Expected 20 items after replaying the page, got %d: %v", len(again), ids(again))
	}
}

func TestAccumulateClampsOffset(t *testing.T) {
	prev := makeCourses(0, 5)
	page := &types.SearchResultPage{Items: makeCourses(5, 5), Total: 100}
	result := Accumulate(prev, page, 50, true)
	if len(result) != 10 {
		t.Errorf("Expected 10 items, got %d", len(result))
	}
}

func TestAccumulateNeverExceedsTotal(t *testing.T) {
	const size = 7
	const total = 30
	var results []types.Resource
	for n := 1; n <= 6; n++ {
		offset := (n - 1) * size
		count := max(0, min(size, total-offset))
		page := &types.SearchResultPage{Items: makeCourses(offset, count), Total: total}
		results = Accumulate(results, page, offset, n > 1)
		expected := min(n*size, total)
		if len(results) != expected {
			t.Fatalf("After %d pages expected %d items, got %d", n, expected, len(results))
		}
	}

	page := &types.SearchResultPage{Items: makeCourses(0, 10), Total: 3}
	if got := len(Accumulate(nil, page, 0, false)); got != 3 {
		t.Errorf("Expected total to cap the results at 3, got %d", got)
	}
}
