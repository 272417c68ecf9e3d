package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./bookclub.db"

	// DefaultReviewsBaseURL is the default endpoint of the external
	// review-aggregation service
	DefaultReviewsBaseURL = "https://www.goodreads.com"
)
