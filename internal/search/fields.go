package search

// Field sets used by the list screens. Weights stay within [0,1] so scores do too.
var (
	ClientFields = []Field{
		{Key: "name", Weight: 1.0},
		{Key: "email", Weight: 0.8},
		{Key: "phone", Weight: 0.6, DisableFuzzy: true},
		{Key: "status", Weight: 0.4},
		{Key: "plan", Weight: 0.3},
	}

	PaymentFields = []Field{
		{Key: "client.name", Weight: 1.0},
		{Key: "description", Weight: 0.7},
		{Key: "status", Weight: 0.5},
		{Key: "amount", Weight: 0.4, DisableFuzzy: true},
	}

	VisitFields = []Field{
		{Key: "location", Weight: 1.0, Threshold: 0.5},
		{Key: "place.business_name", Weight: 0.9},
		{Key: "place.plus_code", Weight: 0.5, DisableFuzzy: true},
		{Key: "client.name", Weight: 0.8},
	}

	GoalFields = []Field{
		{Key: "title", Weight: 1.0},
		{Key: "frequency", Weight: 0.4},
	}
)
