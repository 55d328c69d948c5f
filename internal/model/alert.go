package model

// AlertKind identifies which spending rule produced an alert.
type AlertKind string

const (
	// AlertHighRelativeExpense fires when a transaction dwarfs the user's average.
	AlertHighRelativeExpense AlertKind = "high_relative_expense"
	// AlertHighAbsoluteExpense fires when a transaction exceeds a fixed threshold.
	AlertHighAbsoluteExpense AlertKind = "high_absolute_expense"
	// AlertNearGoalLimit fires when an expense-limit goal is over 80% consumed.
	AlertNearGoalLimit AlertKind = "near_goal_limit"
	// AlertStatisticalOutlier fires when a transaction deviates from its category norm.
	AlertStatisticalOutlier AlertKind = "statistical_outlier"
)

// Alert is an advisory message attached to a transaction confirmation.
// Alerts are transient and never persisted.
type Alert struct {
	Kind    AlertKind
	Message string
}
