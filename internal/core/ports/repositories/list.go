package repositories

// ListFilter carries keyset pagination and simple filters for document lists.
type ListFilter struct {
	Limit     int
	NextToken *string
	PartnerID *string
}

// StatusCounts maps a presented status to the number of records holding it.
type StatusCounts map[string]int
