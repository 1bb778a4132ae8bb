package models

import "strings"

// ContentType distinguishes single films from episodic series.
type ContentType string

const (
	ContentTypeMovie  ContentType = "Movie"
	ContentTypeSeries ContentType = "Series"
)

func (t ContentType) Valid() bool {
	return t == ContentTypeMovie || t == ContentTypeSeries
}

// ParseContentType matches case-insensitively, the SPA sends "movie" as often as "Movie".
func ParseContentType(s string) (ContentType, bool) {
	for _, t := range []ContentType{ContentTypeMovie, ContentTypeSeries} {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

type WatchStatus string

const (
	WatchStatusWatching    WatchStatus = "Watching"
	WatchStatusWantToWatch WatchStatus = "WantToWatch"
	WatchStatusWatched     WatchStatus = "Watched"
)

func (s WatchStatus) Valid() bool {
	switch s {
	case WatchStatusWatching, WatchStatusWantToWatch, WatchStatusWatched:
		return true
	}
	return false
}

func ParseWatchStatus(s string) (WatchStatus, bool) {
	for _, v := range []WatchStatus{WatchStatusWatching, WatchStatusWantToWatch, WatchStatusWatched} {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "Pending"
	ProposalApproved ProposalStatus = "Approved"
	ProposalRejected ProposalStatus = "Rejected"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalPending, ProposalApproved, ProposalRejected:
		return true
	}
	return false
}

func ParseProposalStatus(s string) (ProposalStatus, bool) {
	for _, v := range []ProposalStatus{ProposalPending, ProposalApproved, ProposalRejected} {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}

// CanTransitionTo reports whether a proposal may move from s to next.
// Approved and Rejected are terminal.
func (s ProposalStatus) CanTransitionTo(next ProposalStatus) bool {
	return s == ProposalPending && (next == ProposalApproved || next == ProposalRejected)
}

// CategoryMode selects how a category id filter is matched.
type CategoryMode string

const (
	CategoryModeAny   CategoryMode = "Any"
	CategoryModeExact CategoryMode = "Exact"
)

func ParseCategoryMode(s string) (CategoryMode, bool) {
	for _, v := range []CategoryMode{CategoryModeAny, CategoryModeExact} {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}

type MovieSortBy string

const (
	SortByTitle  MovieSortBy = "Title"
	SortByYear   MovieSortBy = "Year"
	SortByRating MovieSortBy = "Rating"
)

func ParseMovieSortBy(s string) (MovieSortBy, bool) {
	for _, v := range []MovieSortBy{SortByTitle, SortByYear, SortByRating} {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}

type SortDirection string

const (
	SortAsc  SortDirection = "Asc"
	SortDesc SortDirection = "Desc"
)

func ParseSortDirection(s string) (SortDirection, bool) {
	for _, v := range []SortDirection{SortAsc, SortDesc} {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}
