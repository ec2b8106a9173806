package interview

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// WizardNotifier is told when an interview is removed so that per-interview
// wizard progress kept elsewhere can be discarded.
type WizardNotifier interface {
	DiscardProgress(interviewID string)
}

// Store owns the canonical in-memory interview collection and the identity
// of the active interview. All mutation operations target the active record,
// refresh its UpdatedAt and notify subscribers. Reads return deep copies.
//
// Operations referencing an unknown id are silent no-ops; the store never
// returns an error from a mutation.
type Store struct {
	mu         sync.RWMutex
	now        func() time.Time
	interviews []*Interview
	activeID   string
	wizard     WizardNotifier
	subs       []func()
}

// NewStore creates a store seeded with one default interview. now may be nil,
// in which case time.Now is used.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{now: now}
	first := NewInterview(FirstInterviewName, s.now())
	s.interviews = []*Interview{first}
	s.activeID = first.ID
	return s
}

// SetWizardNotifier wires the collaborator informed about deleted interviews.
func (s *Store) SetWizardNotifier(w WizardNotifier) {
	s.mu.Lock()
	s.wizard = w
	s.mu.Unlock()
}

// Subscribe registers fn to run after every mutation. Subscribers are called
// outside the store lock, in registration order.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *Store) findLocked(id string) *Interview {
	for _, iv := range s.interviews {
		if iv.ID == id {
			return iv
		}
	}
	return nil
}

// activeLocked never returns nil: it repairs a dangling active pointer and
// synthesizes a default interview if the collection is somehow empty.
func (s *Store) activeLocked() *Interview {
	if iv := s.findLocked(s.activeID); iv != nil {
		return iv
	}
	if len(s.interviews) == 0 {
		iv := NewInterview(FirstInterviewName, s.now())
		s.interviews = []*Interview{iv}
		s.activeID = iv.ID
		return iv
	}
	s.activeID = s.interviews[0].ID
	return s.interviews[0]
}

// mutateActive applies fn to the active interview, stamps UpdatedAt and
// notifies subscribers.
func (s *Store) mutateActive(fn func(iv *Interview)) {
	s.mu.Lock()
	iv := s.activeLocked()
	fn(iv)
	iv.UpdatedAt = s.now()
	s.mu.Unlock()
	s.notify()
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Interviews returns deep copies of all interviews in collection order.
func (s *Store) Interviews() []*Interview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Interview, len(s.interviews))
	for i, iv := range s.interviews {
		out[i] = iv.Clone()
	}
	return out
}

// Get returns a deep copy of the interview with the given id.
func (s *Store) Get(id string) (*Interview, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if iv := s.findLocked(id); iv != nil {
		return iv.Clone(), true
	}
	return nil, false
}

// ActiveID returns the id of the active interview.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked().ID
}

// ActiveInterview returns a deep copy of the active interview. It never
// returns nil.
func (s *Store) ActiveInterview() *Interview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked().Clone()
}

// CreateInterview inserts a new default interview at the front of the
// collection, makes it active and returns its id.
func (s *Store) CreateInterview(name string) string {
	s.mu.Lock()
	iv := NewInterview(strings.TrimSpace(name), s.now())
	s.interviews = append([]*Interview{iv}, s.interviews...)
	s.activeID = iv.ID
	s.mu.Unlock()
	s.notify()
	return iv.ID
}

// DuplicateInterview deep-copies the named interview with fresh ids and
// timestamps, inserts the copy at the front and makes it active. The second
// return is false if the source id is unknown.
func (s *Store) DuplicateInterview(id string) (string, bool) {
	s.mu.Lock()
	src := s.findLocked(id)
	if src == nil {
		s.mu.Unlock()
		return "", false
	}
	now := s.now()
	dup := src.Clone()
	dup.ID = NewID("interview")
	dup.Name = src.Name + " Kopie"
	dup.Status = StatusPlanned
	dup.ConductedAt = time.Time{}
	dup.CreatedAt = now
	dup.UpdatedAt = now
	dup.Config.TimerState = defaultTimerState()
	s.interviews = append([]*Interview{dup}, s.interviews...)
	s.activeID = dup.ID
	s.mu.Unlock()
	s.notify()
	return dup.ID, true
}

// DeleteInterview removes the interview with the given id. Deleting the
// active interview re-targets the first remaining one; deleting the last
// interview synthesizes a fresh default so the collection is never empty.
func (s *Store) DeleteInterview(id string) {
	s.mu.Lock()
	idx := -1
	for i, iv := range s.interviews {
		if iv.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.interviews = append(s.interviews[:idx], s.interviews[idx+1:]...)
	if len(s.interviews) == 0 {
		iv := NewInterview(FirstInterviewName, s.now())
		s.interviews = []*Interview{iv}
	}
	if s.activeID == id {
		s.activeID = s.interviews[0].ID
	}
	wizard := s.wizard
	s.mu.Unlock()
	if wizard != nil {
		wizard.DiscardProgress(id)
	}
	s.notify()
}

// RenameInterview sets the interview's name. Blank names are a no-op.
func (s *Store) RenameInterview(id, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	s.mu.Lock()
	iv := s.findLocked(id)
	if iv == nil {
		s.mu.Unlock()
		return
	}
	iv.Name = name
	iv.UpdatedAt = s.now()
	s.mu.Unlock()
	s.notify()
}

// SetActiveInterview switches the active pointer. Unknown ids are a no-op.
func (s *Store) SetActiveInterview(id string) {
	s.mu.Lock()
	if s.findLocked(id) == nil {
		s.mu.Unlock()
		return
	}
	s.activeID = id
	s.mu.Unlock()
	s.notify()
}

// UpdateStatus sets the active interview's status. Moving into in_progress
// or completed stamps ConductedAt once; an already-set ConductedAt is kept.
func (s *Store) UpdateStatus(status Status) {
	if !ValidStatus(status) {
		return
	}
	s.mutateActive(func(iv *Interview) {
		iv.Status = status
		if (status == StatusInProgress || status == StatusCompleted) && iv.ConductedAt.IsZero() {
			iv.ConductedAt = s.now()
		}
	})
}

// SetVisibility sets the active interview's visibility.
func (s *Store) SetVisibility(v Visibility) {
	if v != VisibilityPrivate && v != VisibilityPublic {
		return
	}
	s.mutateActive(func(iv *Interview) {
		iv.Visibility = v
	})
}

// UpdateCoreFacts merges the patch into the active interview's core facts.
// summary.coreFacts mirrors coreFacts and is kept in sync here and in every
// founder mutation.
func (s *Store) UpdateCoreFacts(p CoreFactsPatch) {
	s.mutateActive(func(iv *Interview) {
		p.apply(&iv.Config.CoreFacts)
		iv.Config.Summary.CoreFacts = iv.Config.CoreFacts.Clone()
	})
}

// AddFounder appends an additional founder and returns its id.
func (s *Store) AddFounder(name, role, contact string) string {
	id := NewID("founder")
	s.mutateActive(func(iv *Interview) {
		iv.Config.CoreFacts.AdditionalFounders = append(iv.Config.CoreFacts.AdditionalFounders, AdditionalFounder{
			ID:      id,
			Name:    name,
			Role:    role,
			Contact: contact,
		})
		iv.Config.Summary.CoreFacts = iv.Config.CoreFacts.Clone()
	})
	return id
}

func (s *Store) UpdateFounder(id string, p FounderPatch) {
	s.mutateActive(func(iv *Interview) {
		for i := range iv.Config.CoreFacts.AdditionalFounders {
			if iv.Config.CoreFacts.AdditionalFounders[i].ID == id {
				p.apply(&iv.Config.CoreFacts.AdditionalFounders[i])
				break
			}
		}
		iv.Config.Summary.CoreFacts = iv.Config.CoreFacts.Clone()
	})
}

func (s *Store) RemoveFounder(id string) {
	s.mutateActive(func(iv *Interview) {
		founders := iv.Config.CoreFacts.AdditionalFounders
		for i := range founders {
			if founders[i].ID == id {
				iv.Config.CoreFacts.AdditionalFounders = append(founders[:i], founders[i+1:]...)
				break
			}
		}
		iv.Config.Summary.CoreFacts = iv.Config.CoreFacts.Clone()
	})
}

// UpdateSectionNote replaces the note content for the section and refreshes
// its timestamp. Unknown section keys are a no-op.
func (s *Store) UpdateSectionNote(key SectionKey, content string) {
	if !ValidSectionKey(key) {
		return
	}
	s.mutateActive(func(iv *Interview) {
		note := iv.Config.SectionNotes[key]
		note.Content = content
		note.Timestamp = s.now()
		iv.Config.SectionNotes[key] = note
	})
}

// AddQuote captures a quote in the given section and returns its id. The
// quote is prepended to the global list and the section's note; verbatim
// quotes also enter summary.keyQuotes (capped at MaxKeyQuotes), and quotes
// from the concept-test section are echoed into steveReaction.
func (s *Store) AddQuote(text string, key SectionKey, isVerbatim bool) string {
	if !ValidSectionKey(key) {
		return ""
	}
	id := NewID("quote")
	s.mutateActive(func(iv *Interview) {
		q := Quote{
			ID:         id,
			Text:       text,
			SectionKey: key,
			IsVerbatim: isVerbatim,
			CreatedAt:  s.now(),
		}
		iv.Config.AllQuotes = append([]Quote{q}, iv.Config.AllQuotes...)

		note := iv.Config.SectionNotes[key]
		note.Quotes = append([]Quote{q}, note.Quotes...)
		iv.Config.SectionNotes[key] = note

		if isVerbatim {
			kq := append([]Quote{q}, iv.Config.Summary.KeyQuotes...)
			if len(kq) > MaxKeyQuotes {
				kq = kq[:MaxKeyQuotes]
			}
			iv.Config.Summary.KeyQuotes = kq
		}
		if key == SectionConceptTest {
			iv.Config.Summary.SteveReaction.QuotesAboutSteve = append(iv.Config.Summary.SteveReaction.QuotesAboutSteve, text)
		}
	})
	return id
}

// RemoveQuote removes the quote from every place it can appear: the global
// list, its section note, keyQuotes, and (by text) quotesAboutSteve.
func (s *Store) RemoveQuote(id string) {
	s.mutateActive(func(iv *Interview) {
		var removed *Quote
		for i := range iv.Config.AllQuotes {
			if iv.Config.AllQuotes[i].ID == id {
				q := iv.Config.AllQuotes[i]
				removed = &q
				iv.Config.AllQuotes = append(iv.Config.AllQuotes[:i], iv.Config.AllQuotes[i+1:]...)
				break
			}
		}
		if removed == nil {
			return
		}

		note := iv.Config.SectionNotes[removed.SectionKey]
		for i := range note.Quotes {
			if note.Quotes[i].ID == id {
				note.Quotes = append(note.Quotes[:i], note.Quotes[i+1:]...)
				break
			}
		}
		iv.Config.SectionNotes[removed.SectionKey] = note

		kq := iv.Config.Summary.KeyQuotes
		for i := range kq {
			if kq[i].ID == id {
				iv.Config.Summary.KeyQuotes = append(kq[:i], kq[i+1:]...)
				break
			}
		}

		if removed.SectionKey == SectionConceptTest {
			quotes := iv.Config.Summary.SteveReaction.QuotesAboutSteve
			kept := make([]string, 0, len(quotes))
			for _, q := range quotes {
				if q != removed.Text {
					kept = append(kept, q)
				}
			}
			iv.Config.Summary.SteveReaction.QuotesAboutSteve = kept
		}
	})
}

// SetChecklistItem sets the checked state of one checklist item.
func (s *Store) SetChecklistItem(itemID string, checked bool) {
	s.mutateActive(func(iv *Interview) {
		for i := range iv.Config.Checklist {
			if iv.Config.Checklist[i].ID == itemID {
				iv.Config.Checklist[i].Checked = checked
				break
			}
		}
	})
}

// AddChecklistItem appends a new unchecked item and returns its id. Blank
// labels are a no-op.
func (s *Store) AddChecklistItem(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	id := NewID("checklist")
	s.mutateActive(func(iv *Interview) {
		iv.Config.Checklist = append(iv.Config.Checklist, ChecklistItem{ID: id, Label: label})
	})
	return id
}

func (s *Store) RemoveChecklistItem(itemID string) {
	s.mutateActive(func(iv *Interview) {
		for i := range iv.Config.Checklist {
			if iv.Config.Checklist[i].ID == itemID {
				iv.Config.Checklist = append(iv.Config.Checklist[:i], iv.Config.Checklist[i+1:]...)
				break
			}
		}
	})
}

// UpdateTimerState merges the patch into the active interview's timer state.
func (s *Store) UpdateTimerState(p TimerStatePatch) {
	s.mutateActive(func(iv *Interview) {
		p.apply(&iv.Config.TimerState)
	})
}

// UpdateSummary merges the patch into the active interview's summary and
// refreshes GeneratedAt. Pain-point ranks are re-derived when the list is
// replaced wholesale.
func (s *Store) UpdateSummary(p SummaryPatch) {
	s.mutateActive(func(iv *Interview) {
		p.apply(&iv.Config.Summary)
		if p.PainPoints != nil {
			renumberPainPoints(iv.Config.Summary.PainPoints)
		}
		iv.Config.Summary.GeneratedAt = s.now()
	})
}

func (s *Store) UpdateJTBD(p JTBDPatch) {
	s.mutateActive(func(iv *Interview) {
		p.apply(&iv.Config.Summary.JTBD)
	})
}

// AddPainPoint appends a pain point with the next free rank and returns its
// id. Intensity defaults to 3 when the patch leaves it unset.
func (s *Store) AddPainPoint(p PainPointPatch) string {
	id := NewID("pain")
	s.mutateActive(func(iv *Interview) {
		pp := PainPoint{ID: id, Intensity: 3}
		p.apply(&pp)
		pp.Rank = len(iv.Config.Summary.PainPoints) + 1
		iv.Config.Summary.PainPoints = append(iv.Config.Summary.PainPoints, pp)
	})
	return id
}

func (s *Store) UpdatePainPoint(id string, p PainPointPatch) {
	s.mutateActive(func(iv *Interview) {
		for i := range iv.Config.Summary.PainPoints {
			if iv.Config.Summary.PainPoints[i].ID == id {
				p.apply(&iv.Config.Summary.PainPoints[i])
				break
			}
		}
	})
}

// RemovePainPoint removes the pain point and re-derives dense 1..N ranks.
func (s *Store) RemovePainPoint(id string) {
	s.mutateActive(func(iv *Interview) {
		points := iv.Config.Summary.PainPoints
		for i := range points {
			if points[i].ID == id {
				points = append(points[:i], points[i+1:]...)
				break
			}
		}
		renumberPainPoints(points)
		iv.Config.Summary.PainPoints = points
	})
}

// ReorderPainPoints moves the pain point at fromIndex to toIndex and
// re-derives dense 1..N ranks. Out-of-range indices are a no-op.
func (s *Store) ReorderPainPoints(fromIndex, toIndex int) {
	s.mutateActive(func(iv *Interview) {
		points := iv.Config.Summary.PainPoints
		if fromIndex < 0 || fromIndex >= len(points) || toIndex < 0 || toIndex >= len(points) {
			return
		}
		moved := points[fromIndex]
		points = append(points[:fromIndex], points[fromIndex+1:]...)
		points = append(points[:toIndex], append([]PainPoint{moved}, points[toIndex:]...)...)
		renumberPainPoints(points)
		iv.Config.Summary.PainPoints = points
	})
}

func renumberPainPoints(points []PainPoint) {
	for i := range points {
		points[i].Rank = i + 1
	}
}

func (s *Store) UpdateSteveReaction(p SteveReactionPatch) {
	s.mutateActive(func(iv *Interview) {
		p.apply(&iv.Config.Summary.SteveReaction)
	})
}

func (s *Store) UpdateOverallAssessment(p OverallAssessmentPatch) {
	s.mutateActive(func(iv *Interview) {
		p.apply(&iv.Config.Summary.OverallAssessment)
	})
}

// AddCustomQuestion appends an ad hoc question to one section and returns
// its id. Blank texts and unknown section keys are a no-op.
func (s *Store) AddCustomQuestion(key SectionKey, text string) string {
	text = strings.TrimSpace(text)
	if text == "" || !ValidSectionKey(key) {
		return ""
	}
	id := NewID("question")
	s.mutateActive(func(iv *Interview) {
		iv.Config.CustomQuestions[key] = append(iv.Config.CustomQuestions[key], Question{
			ID:      id,
			Text:    text,
			Segment: "both",
		})
	})
	return id
}

func (s *Store) RemoveCustomQuestion(key SectionKey, id string) {
	if !ValidSectionKey(key) {
		return
	}
	s.mutateActive(func(iv *Interview) {
		qs := iv.Config.CustomQuestions[key]
		for i := range qs {
			if qs[i].ID == id {
				iv.Config.CustomQuestions[key] = append(qs[:i], qs[i+1:]...)
				break
			}
		}
	})
}

// ReplaceActiveConfig wholesale-replaces the active interview's config after
// running it through the defaults-merge normalizer, so imported or restored
// configs always come out fully shaped.
func (s *Store) ReplaceActiveConfig(cfg Config) {
	s.mutateActive(func(iv *Interview) {
		iv.Config = NormalizeConfig(cfg, s.now())
	})
}

// Load replaces the whole collection with normalized copies of the given
// interviews, used when rehydrating from a snapshot or the remote store.
// An empty input synthesizes one default interview. The active pointer keeps
// its value when still valid, otherwise it is repaired to the first record.
func (s *Store) Load(interviews []*Interview, activeID string) {
	s.mu.Lock()
	now := s.now()
	loaded := make([]*Interview, 0, len(interviews))
	for _, iv := range interviews {
		if iv == nil {
			continue
		}
		loaded = append(loaded, NormalizeInterview(iv, now))
	}
	if len(loaded) == 0 {
		loaded = []*Interview{NewInterview(FirstInterviewName, now)}
	}
	s.interviews = loaded
	s.activeID = activeID
	s.activeLocked()
	s.mu.Unlock()
	s.notify()
}

// MergeRemote reconciles remote records into the collection by id, keeping
// whichever side has the newer UpdatedAt. Remote-only records are appended;
// the merged collection is sorted newest-created first, matching the
// insert-at-front ordering of local creates.
func (s *Store) MergeRemote(remote []*Interview) {
	s.mu.Lock()
	now := s.now()
	for _, r := range remote {
		if r == nil {
			continue
		}
		norm := NormalizeInterview(r, now)
		local := s.findLocked(norm.ID)
		if local == nil {
			s.interviews = append(s.interviews, norm)
			continue
		}
		if norm.UpdatedAt.After(local.UpdatedAt) {
			*local = *norm
		}
	}
	sort.SliceStable(s.interviews, func(i, j int) bool {
		return s.interviews[i].CreatedAt.After(s.interviews[j].CreatedAt)
	})
	s.activeLocked()
	s.mu.Unlock()
	s.notify()
}
