package interview

// Human-readable German labels for exports and reports. Unknown values fall
// through unchanged so exports never drop data.

func SectionLabel(k SectionKey) string {
	if l, ok := map[SectionKey]string{
		SectionWarmup:      "Warm-up",
		SectionJourney:     "Gründungsreise",
		SectionPain:        "Schmerz & Umgehungslösungen",
		SectionAI:          "KI & Automatisierung",
		SectionConceptTest: "Konzepttest bean:up",
		SectionClosing:     "Abschluss",
	}[k]; ok {
		return l
	}
	return string(k)
}

func StatusLabel(s Status) string {
	if l, ok := map[Status]string{
		StatusPlanned:    "Geplant",
		StatusInProgress: "In Durchführung",
		StatusCompleted:  "Abgeschlossen",
		StatusAborted:    "Abgebrochen",
	}[s]; ok {
		return l
	}
	return string(s)
}

func SegmentLabel(s Segment) string {
	if l, ok := map[Segment]string{
		SegmentRetrospective: "Retrospektiv",
		SegmentFounding:      "Aktuell gründend",
	}[s]; ok {
		return l
	}
	return string(s)
}

func InterestLabel(l InterestLevel) string {
	if s, ok := map[InterestLevel]string{
		InterestStrong:    "stark",
		InterestPolite:    "höflich",
		InterestSkeptical: "skeptisch",
	}[l]; ok {
		return s
	}
	return string(l)
}

func AIAttitudeLabel(a AIAttitude) string {
	return string(a)
}

func FollowUpPriorityLabel(p FollowUpPriority) string {
	return string(p)
}
