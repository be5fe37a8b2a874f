package eligibility

// DefaultDefinitions returns the shipped admission schemes in display order.
func DefaultDefinitions() []Definition {
	allGenders := []Gender{GenderMale, GenderFemale}
	graduates := []Education{EducationGraduate, EducationEngineering, EducationLaw}

	return []Definition{
		{
			ID:             "nda",
			Name:           "NDA",
			Genders:        allGenders,
			Education:      []Education{EducationSecondary},
			MinAge:         16.5,
			MaxAge:         19.5,
			SuccessMessage: "Eligible for NDA through the UPSC written exam",
		},
		{
			ID:             "tes",
			Name:           "10+2 TES",
			Genders:        []Gender{GenderMale},
			Education:      []Education{EducationSecondary},
			MinAge:         16.5,
			MaxAge:         19.5,
			MinPercentage:  60,
			RequireJEE:     true,
			SuccessMessage: "Eligible for 10+2 TES shortlisting",
			Acknowledge:    []OptionalScore{ScoreJEE},
		},
		{
			ID:             "cds-ima",
			Name:           "CDS (IMA)",
			Genders:        []Gender{GenderMale},
			Education:      graduates,
			MinAge:         19,
			MaxAge:         24,
			SuccessMessage: "Eligible for CDS (IMA) through the UPSC written exam",
		},
		{
			ID:             "ota",
			Name:           "OTA (SSC non-tech)",
			Genders:        allGenders,
			Education:      graduates,
			MinAge:         19,
			MaxAge:         25,
			SuccessMessage: "Eligible for OTA through the CDS exam",
		},
		{
			ID:             "ssc-tech",
			Name:           "SSC Tech",
			Genders:        allGenders,
			Education:      []Education{EducationEngineering},
			MinAge:         20,
			MaxAge:         27,
			SuccessMessage: "Eligible for SSC Tech; shortlisting is by engineering marks",
			Acknowledge:    []OptionalScore{ScoreSubjectPercentage},
		},
		{
			ID:              "jag",
			Name:            "JAG Entry",
			Genders:         allGenders,
			Education:       []Education{EducationLaw},
			MinAge:          21,
			MaxAge:          27,
			MinPercentage:   55,
			RequireLawScore: true,
			SuccessMessage:  "Eligible for JAG Entry",
			Acknowledge:     []OptionalScore{ScoreLawAptitude},
		},
		{
			ID:                   "ncc-special",
			Name:                 "NCC Special Entry",
			Genders:              allGenders,
			Education:            graduates,
			MinAge:               19,
			MaxAge:               25,
			MinPercentage:        50,
			RequireCertification: true,
			SuccessMessage:       "Eligible for NCC Special Entry; direct SSB interview",
		},
	}
}

// DefaultSchemes compiles DefaultDefinitions.
func DefaultSchemes() ([]Scheme, error) {
	defs := DefaultDefinitions()
	schemes := make([]Scheme, 0, len(defs))
	for _, def := range defs {
		s, err := BuildScheme(def)
		if err != nil {
			return nil, err
		}
		schemes = append(schemes, s)
	}
	return schemes, nil
}
