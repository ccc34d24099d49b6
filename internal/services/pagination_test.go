package services

import "testing"

func TestPaginateFirstPageAliases(t *testing.T) {
	// Page 0 and page 1 both mean the first page
	offset0, info0 := paginate(0, 40)
	offset1, info1 := paginate(1, 40)

	if offset0 != 0 || offset1 != 0 {
		t.Errorf("Expected offset 0 for pages 0 and 1, got %d and %d", offset0, offset1)
	}
	if info0.CurrentPage != 1 || info1.CurrentPage != 1 {
		t.Errorf("Expected current page 1, got %d and %d", info0.CurrentPage, info1.CurrentPage)
	}
}

func TestPaginateBoundaries(t *testing.T) {
	// 40 records at 15 per page is 3 pages
	_, first := paginate(1, 40)
	if first.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", first.TotalPages)
	}
	if first.Prev != nil {
		t.Error("Expected nil prev on first page")
	}
	if first.Next == nil || *first.Next != 2 {
		t.Errorf("Expected next page 2, got %v", first.Next)
	}

	offset, middle := paginate(2, 40)
	if offset != 15 {
		t.Errorf("Expected offset 15 on page 2, got %d", offset)
	}
	if middle.Prev == nil || *middle.Prev != 1 {
		t.Errorf("Expected prev page 1, got %v", middle.Prev)
	}
	if middle.Next == nil || *middle.Next != 3 {
		t.Errorf("Expected next page 3, got %v", middle.Next)
	}

	_, last := paginate(3, 40)
	if last.Next != nil {
		t.Error("Expected nil next on last page")
	}
	if last.Prev == nil || *last.Prev != 2 {
		t.Errorf("Expected prev page 2, got %v", last.Prev)
	}
}

func TestPaginateExactMultiple(t *testing.T) {
	_, info := paginate(1, 30)
	if info.TotalPages != 2 {
		t.Errorf("Expected 2 total pages for 30 records, got %d", info.TotalPages)
	}
}
