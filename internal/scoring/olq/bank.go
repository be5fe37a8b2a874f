package olq

// DefaultQuestionBank is the shipped interview question bank.
func DefaultQuestionBank() QuestionBank {
	return QuestionBank{
		TraitLeadership: {
			"Describe a time you led a group through a task nobody wanted to do. How did you get them moving?",
			"Tell me about a decision you made for your team that turned out to be wrong.",
		},
		TraitInitiative: {
			"What is something you started on your own without being asked, and how far did you take it?",
			"When did you last spot a problem before anyone else did? What did you do about it?",
		},
		TraitResponsibility: {
			"Tell me about a commitment you found hard to keep. What did you do?",
			"Who depends on you at home or college, and how do you make sure you do not let them down?",
		},
		TraitSocialAdaptability: {
			"Describe a time you had to work with people very different from you. How did you fit in?",
			"How do you make friends when you move to a new place?",
		},
		TraitConfidence: {
			"Tell me about a situation where you had to speak up in front of seniors. How did it go?",
			"What would you do if your answer in a group discussion was challenged by everyone?",
		},
		TraitConsistency: {
			"Which routine have you kept for more than a year, and what kept you at it?",
			"Your marks vary across years. Walk me through what changed.",
		},
	}
}
