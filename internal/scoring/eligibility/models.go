package eligibility

// Gender of the candidate.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Education is the highest completed education level.
type Education string

const (
	EducationSecondary   Education = "secondary"
	EducationGraduate    Education = "graduate"
	EducationEngineering Education = "engineering"
	EducationLaw         Education = "law"
)

// OptionalScore names an optional test score a scheme can acknowledge.
type OptionalScore string

const (
	ScoreSubjectPercentage OptionalScore = "subjectPercentage"
	ScoreJEE               OptionalScore = "jeeScore"
	ScoreLawAptitude       OptionalScore = "lawAptitudeScore"
)

// CandidateProfile is the input to the resolver. Optional scores are nil when
// not supplied.
type CandidateProfile struct {
	Age               *float64  `json:"age" validate:"required,finite,gt=0,lte=100"`
	Gender            Gender    `json:"gender" validate:"required,oneof=male female"`
	Education         Education `json:"education" validate:"required,oneof=secondary graduate engineering law"`
	SubjectPercentage *float64  `json:"subjectPercentage,omitempty" validate:"omitempty,finite,gte=0,lte=100"`
	JEEScore          *float64  `json:"jeeScore,omitempty" validate:"omitempty,finite,gte=0"`
	LawAptitudeScore  *float64  `json:"lawAptitudeScore,omitempty" validate:"omitempty,finite,gte=0"`
	Certified         bool      `json:"certified"`
}

func (p CandidateProfile) optionalScore(s OptionalScore) *float64 {
	switch s {
	case ScoreSubjectPercentage:
		return p.SubjectPercentage
	case ScoreJEE:
		return p.JEEScore
	case ScoreLawAptitude:
		return p.LawAptitudeScore
	default:
		return nil
	}
}

// Result is the outcome of one scheme.
type Result struct {
	SchemeID   string `json:"schemeId"`
	SchemeName string `json:"schemeName"`
	Eligible   bool   `json:"eligible"`
	Reason     string `json:"reason"`
}
