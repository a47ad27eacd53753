package model

// InitialData is written to an empty store on first run.
func InitialData() []Task {
	return []Task{
		{
			ID:          1,
			Title:       "Launch Epic Career 🚀",
			Description: "Create a killer Resume",
			Status:      StatusTodo,
			Board:       "Launch Career",
		},
		{
			ID:          2,
			Title:       "Conquer React⚛️",
			Description: "Ensure the app is working properly",
			Status:      StatusTodo,
			Board:       "Launch Career",
		},
		{
			ID:          3,
			Title:       "Understand Databases⚙️",
			Description: "",
			Status:      StatusTodo,
			Board:       "Launch Career",
		},
		{
			ID:          4,
			Title:       "Crush Frameworks 🖼️",
			Description: "",
			Status:      StatusTodo,
			Board:       "Launch Career",
		},
		{
			ID:          5,
			Title:       "Master JavaScript 💛",
			Description: "Get comfortable with the fundamentals",
			Status:      StatusDoing,
			Board:       "Launch Career",
		},
		{
			ID:          6,
			Title:       "Never Give Up 🏆",
			Description: "You're almost there",
			Status:      StatusDoing,
			Board:       "Launch Career",
		},
		{
			ID:          7,
			Title:       "Explore ES6 Features 🚀",
			Description: "Let's go, let's go!",
			Status:      StatusDone,
			Board:       "Launch Career",
		},
		{
			ID:          8,
			Title:       "Have fun 🥳",
			Description: "Time for a break",
			Status:      StatusDone,
			Board:       "Launch Career",
		},
		{
			ID:          9,
			Title:       "Plan the roadmap 🗺️",
			Description: "Outline the next quarter",
			Status:      StatusTodo,
			Board:       "Roadmap",
		},
		{
			ID:          10,
			Title:       "Ship the first milestone",
			Description: "",
			Status:      StatusDoing,
			Board:       "Roadmap",
		},
	}
}
