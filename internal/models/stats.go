package models

// Stats is the dashboard aggregate snapshot.
type Stats struct {
	TotalLearners   int     `json:"total_learners"`
	PendingLearners int     `json:"pending_learners"`
	TotalStaff      int     `json:"total_staff"`
	TotalMarks      int     `json:"total_marks"`
	TotalBooks      int     `json:"total_books"`
	TotalNotices    int     `json:"total_notices"`
	FeesCollected   float64 `json:"fees_collected"`
	FeesOutstanding float64 `json:"fees_outstanding"`
	BlockedLearners int     `json:"blocked_learners"`
}

// ReportCard bundles a learner's record for term reporting.
type ReportCard struct {
	Learner    Learner        `json:"learner"`
	Marks      []Mark         `json:"marks"`
	Attendance map[string]int `json:"attendance"`
}
