package interview

// BeanupPitch is the concept text read to the interviewee at the start of
// the konzepttest_steve section.
const BeanupPitch = "Stell dir vor, du hättest einen KI-gestützten Co-Piloten für deine Gründung — wir nennen ihn bean:up. bean:up begleitet dich von der ersten Idee bis zum fertigen Businessplan. Er hilft dir, deinen Markt zu verstehen, dein Geschäftsmodell zu validieren, und erstellt dir bankfertige Unterlagen — alles in einem Tool, für einen Bruchteil der Kosten einer klassischen Beratung. Du sagst bean:up, was du vorhast, und er führt dich Schritt für Schritt durch den Prozess."

// DefaultChecklistLabels seeds the pre-interview checklist of a new interview.
var DefaultChecklistLabels = []string{
	"Interviewziel für dieses Gespräch notiert",
	"Segment (retrospektiv/aktuell gründend) vorab eingeschätzt",
	"Einwilligung für Notizen/Zitate vorbereitet",
	"Interviewleitfaden und Fragen geprüft",
	"Timer und Durchführungsmodus bereit",
	"bean:up-Pitch final abgestimmt",
	"Post-Interview-Zusammenfassung direkt im Anschluss eingeplant",
}

var questionSets = map[SectionKey][]Question{
	SectionWarmup: {
		{ID: "warmup-1", Text: "Erzähl bitte kurz von dir und deinem Gründungskontext.", Segment: "both", Category: "intro"},
		{ID: "warmup-2", Text: "Wann hast du angefangen zu gründen bzw. wann hast du gegründet?", Segment: "both", Category: "timeline"},
		{ID: "warmup-3", Text: "Wenn du auf die Anfangsphase zurückblickst: Was war am unklarsten?", Segment: string(SegmentRetrospective), Category: "retrospective"},
		{ID: "warmup-4", Text: "Welche Entscheidung steht in den nächsten 2 Wochen bei dir konkret an?", Segment: string(SegmentFounding), Category: "current"},
	},
	SectionJourney: {
		{ID: "reise-1", Text: "Welche Schritte deiner Gründungsreise waren bisher am schwierigsten?", Segment: "both", Category: "journey"},
		{ID: "reise-2", Text: "Was hat den Ausschlag gegeben, aktiv nach Lösungen zu suchen?", Segment: "both", Category: "jtbd-trigger"},
		{ID: "reise-3", Text: "Rückblickend: Welche frühen Entscheidungen würdest du heute anders treffen?", Segment: string(SegmentRetrospective), IsFollowUp: true, Category: "retrospective"},
		{ID: "reise-4", Text: "Was blockiert dich aktuell am meisten auf dem Weg zum nächsten Meilenstein?", Segment: string(SegmentFounding), IsFollowUp: true, Category: "current"},
	},
	SectionPain: {
		{ID: "pain-1", Text: "Welche Aufgaben fühlen sich aktuell besonders frustrierend oder zeitintensiv an?", Segment: "both", Category: "pain"},
		{ID: "pain-2", Text: "Wie oft tritt dieses Problem auf und was kostet es dich (Zeit/Geld/Nerven)?", Segment: "both", IsFollowUp: true, Category: "cost"},
		{ID: "pain-3", Text: "Welche Umgehungslösungen hast du probiert und warum waren sie nicht ausreichend?", Segment: "both", IsFollowUp: true, Category: "workaround"},
	},
	SectionAI: {
		{ID: "ki-1", Text: "Wie stehst du grundsätzlich zu KI in deinem Gründungsalltag?", Segment: "both", Category: "attitude"},
		{ID: "ki-2", Text: "Welche KI-Tools nutzt du bereits und für welche Aufgaben?", Segment: "both", Category: "usage"},
		{ID: "ki-3", Text: "Welche Hürden halten dich davon ab, mehr zu automatisieren?", Segment: "both", IsFollowUp: true, Category: "barriers"},
	},
	SectionConceptTest: {
		{ID: "steve-1", Text: "Was ist deine erste Reaktion auf das bean:up-Konzept?", Segment: "both", Category: "reaction"},
		{ID: "steve-2", Text: "Welche Funktion wäre für dich am wertvollsten?", Segment: "both", IsFollowUp: true, Category: "feature"},
		{ID: "steve-3", Text: "Wofür wärst du bereit, monatlich zu zahlen?", Segment: "both", IsFollowUp: true, Category: "wtp"},
	},
	SectionClosing: {
		{ID: "abschluss-1", Text: "Was sollten wir zum Abschluss noch verstehen, was bisher nicht gefragt wurde?", Segment: "both", Category: "closing"},
		{ID: "abschluss-2", Text: "Dürfen wir bei Rückfragen erneut auf dich zukommen?", Segment: "both", Category: "follow-up"},
		{ID: "abschluss-3", Text: "Kennst du weitere Gründer:innen, mit denen wir sprechen sollten?", Segment: "both", IsFollowUp: true, Category: "referral"},
	},
}

var sectionCatalog = []SectionConfig{
	{
		Key:             SectionWarmup,
		Label:           "1. Warm-up",
		DurationMinutes: 8,
		Description:     "Kontext setzen, Vertrauen aufbauen und Interviewziel transparent machen.",
		Questions:       questionSets[SectionWarmup],
		Donts: []string{
			"Nicht pitchen oder verkaufen.",
			"Nicht mit Ja/Nein-Fragen starten.",
			"Keine suggestiven Formulierungen verwenden.",
		},
	},
	{
		Key:             SectionJourney,
		Label:           "2. Gründungsreise",
		DurationMinutes: 12,
		Description:     "Ablauf, Trigger und Kontext der Gründungsreise verstehen.",
		Questions:       questionSets[SectionJourney],
		Donts: []string{
			"Nicht auf Lösungsdetails springen, bevor das Problem klar ist.",
			"Nicht eigene Annahmen als Fakten darstellen.",
		},
	},
	{
		Key:             SectionPain,
		Label:           "3. Schmerz & Umgehungslösungen",
		DurationMinutes: 15,
		Description:     "Konkrete Schmerzpunkte, Häufigkeit, Intensität und aktuelle Umgehungslösungen aufdecken.",
		Questions:       questionSets[SectionPain],
		Donts: []string{
			"Keine abstrakten Probleme akzeptieren, immer konkrete Beispiele erfragen.",
			"Nicht vorschnell priorisieren ohne Evidenz.",
		},
	},
	{
		Key:             SectionAI,
		Label:           "4. KI & Automatisierung",
		DurationMinutes: 10,
		Description:     "KI-Reifegrad, Haltung, genutzte Tools und Barrieren erfassen.",
		Questions:       questionSets[SectionAI],
		Donts: []string{
			"Nicht bewerten, wenn jemand KI ablehnt.",
			"Technische Begriffe nicht ungefragt voraussetzen.",
		},
	},
	{
		Key:             SectionConceptTest,
		Label:           "5. Konzepttest bean:up",
		DurationMinutes: 10,
		Description:     "bean:up-Pitch testen, Reaktion und Zahlungsbereitschaft dokumentieren.",
		Questions:       questionSets[SectionConceptTest],
		Donts: []string{
			"Nicht verteidigen oder argumentieren, wenn Kritik kommt.",
			"Nicht Features vor Problemen priorisieren.",
		},
	},
	{
		Key:             SectionClosing,
		Label:           "6. Abschluss",
		DurationMinutes: 5,
		Description:     "Offene Punkte klären, Nachfassen sichern, Empfehlungen erfragen.",
		Questions:       questionSets[SectionClosing],
		Donts: []string{
			"Nicht ohne nächsten Schritt beenden.",
			"Nicht vergessen, um Erlaubnis für Rückfragen zu bitten.",
		},
	},
}

// Sections returns the interview guide's section catalog in order.
func Sections() []SectionConfig {
	out := make([]SectionConfig, len(sectionCatalog))
	copy(out, sectionCatalog)
	return out
}

// SectionByKey returns the catalog entry for k, or nil for unknown keys.
func SectionByKey(k SectionKey) *SectionConfig {
	for i := range sectionCatalog {
		if sectionCatalog[i].Key == k {
			sc := sectionCatalog[i]
			return &sc
		}
	}
	return nil
}

// SectionDurationMs returns the configured target duration of section k in
// milliseconds, or 0 for unknown keys.
func SectionDurationMs(k SectionKey) int64 {
	sc := SectionByKey(k)
	if sc == nil {
		return 0
	}
	return int64(sc.DurationMinutes) * 60 * 1000
}
