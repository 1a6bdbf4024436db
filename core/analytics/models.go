package analytics

import "time"

// Totals is the raw row-count snapshot the overview is computed from.
type Totals struct {
	Users       int `json:"totalUsers"`
	Projects    int `json:"totalProjects"`
	Submissions int `json:"totalSubmissions"`
	Reviews     int `json:"totalReviews"`
	Assignments int `json:"totalAssignments"`
}

// Activity is one row of the recent-activity feed: a review with its
// reviewer, the reviewed student and the project joined in.
type Activity struct {
	ReviewID     int       `json:"reviewId"`
	Score        int       `json:"score"`
	ReviewerName string    `json:"reviewerName"`
	StudentName  string    `json:"studentName"`
	ProjectTitle string    `json:"projectTitle"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Overview is the platform-wide statistics snapshot.
type Overview struct {
	Totals
	// AverageScore is the mean of all review scores, rounded to 2 decimals;
	// 0 when there are no reviews.
	AverageScore float64 `json:"averageScore"`
	// AveragePoints is the mean of all graded submission points, rounded to
	// 1 decimal; 0 when nothing is graded.
	AveragePoints float64 `json:"averagePoints"`
	// CompletionRate is the percentage of assignments with status COMPLETED,
	// rounded to 1 decimal.
	CompletionRate float64    `json:"completionRate"`
	RecentActivity []Activity `json:"recentActivity"`
}

// Summary is the per-project or per-student statistics variant.
type Summary struct {
	SubmissionCount int     `json:"submissionCount"`
	ReviewCount     int     `json:"reviewCount"`
	AverageScore    float64 `json:"averageScore"`
	AveragePoints   float64 `json:"averagePoints"`
	// ScoreDistribution buckets review scores; index i holds the count of
	// score i+1.
	ScoreDistribution [5]int `json:"scoreDistribution"`
}
