package model

// Stats summarizes the size of a model per variable family.
type Stats struct {
	MaxDegree   int `json:"max_degree"`
	BigM1       int `json:"big_m1"`
	BigM2       int `json:"big_m2"`
	Vertices    int `json:"vertices"`
	Edges       int `json:"edges"`
	Distance    int `json:"distance_pairs"`
	Triples     int `json:"label_triples"`
	Variables   int `json:"variables"`
	Constraints int `json:"constraints"`
}

// Stats returns the variable and constraint counts of m.
func (m *Model) Stats() Stats {
	s := Stats{
		MaxDegree:   m.maxDegree,
		BigM1:       m.bigM1,
		BigM2:       m.bigM2,
		Vertices:    len(m.colorVars),
		Variables:   len(m.vars),
		Constraints: len(m.cons),
	}
	for _, v := range m.vars {
		switch v.Family {
		case FamilyAdjacent:
			s.Edges++
		case FamilyDistance:
			s.Distance++
		case FamilyLabel:
			s.Triples++
		}
	}
	return s
}
