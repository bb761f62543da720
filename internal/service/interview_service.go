package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"stressdost/internal/combo"
	"stressdost/internal/config"
	"stressdost/internal/model"
	"stressdost/internal/planner"
	"stressdost/internal/schema"
	"stressdost/internal/slots"
)

// Sentinel errors the transport layer maps onto HTTP status codes.
var (
	ErrTextRequired     = errors.New("text is required")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionNotActive = errors.New("session is not active")
	ErrInvalidSlot      = errors.New("invalid domain/slot")
	ErrAnswerRequired   = errors.New("answer is required")
	ErrMissingTarget    = errors.New("domain/slot missing (no current question)")
	ErrNotCompleted     = errors.New("session not completed")
)

// SessionStore is the persistence surface the interview needs.
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	Update(ctx context.Context, session *model.Session) error
}

// CauseDetector identifies stress causes and components in free text.
type CauseDetector interface {
	DetectCauses(ctx context.Context, text string) map[string]bool
	ExtractComponents(ctx context.Context, text string) []string
}

// SlotPrefiller extracts already-stated slot values from the opening text.
type SlotPrefiller interface {
	Prefill(ctx context.Context, text string) model.PrefillResult
}

// SlotGate decides whether a slot is worth asking right now.
type SlotGate interface {
	ShouldAskSlot(ctx context.Context, userText, domain, slot string) bool
}

// QuestionGenerator produces one validated slot question, or empty.
type QuestionGenerator interface {
	GenerateQuestion(ctx context.Context, domain, slot string, qctx QuestionContext) string
}

// PopupGenerator produces the completion-time popup batch.
type PopupGenerator interface {
	GeneratePopups(ctx context.Context, filled *slots.Filled, emotionSignals []string) []model.Popup
}

// defaultActiveDomains seeds the interview when nothing was detected.
var defaultActiveDomains = []string{"time_pressure", "distractions", "academic_confidence"}

// InterviewService drives the adaptive interview loop: one turn at a time,
// alternating next-question and answer until the stop rule fires.
type InterviewService struct {
	store     SessionStore
	causes    CauseDetector
	prefiller SlotPrefiller
	gate      SlotGate
	questions QuestionGenerator
	popups    PopupGenerator

	minQuestions       int
	maxQuestions       int
	maxDomainQuestions int

	broadcaster Broadcaster
}

func NewInterviewService(
	store SessionStore,
	causes CauseDetector,
	prefiller SlotPrefiller,
	gate SlotGate,
	questions QuestionGenerator,
	popups PopupGenerator,
	cfg *config.Config,
) *InterviewService {
	return &InterviewService{
		store:              store,
		causes:             causes,
		prefiller:          prefiller,
		gate:               gate,
		questions:          questions,
		popups:             popups,
		minQuestions:       cfg.MinQuestions,
		maxQuestions:       cfg.MaxQuestions,
		maxDomainQuestions: cfg.MaxDomainQuestions,
	}
}

// SetBroadcaster wires the live event channel after construction.
func (s *InterviewService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start creates a session from the student's opening text, prefilling slots
// and activating domains from detected causes.
func (s *InterviewService) Start(ctx context.Context, text string) (*model.StartResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}

	session := model.NewSession(uuid.NewString(), text)

	prefill := s.prefiller.Prefill(ctx, text)
	causes := s.causes.DetectCauses(ctx, text)
	session.Meta.Causes = causes

	if len(prefill.ActiveDomains) > 0 {
		session.ActiveDomains = prefill.ActiveDomains
	} else {
		session.ActiveDomains = planner.ActivateDomainsFromCauses(causes)
	}

	for domain, values := range prefill.Prefill {
		for slot, value := range values {
			session.FilledSlots.Set(domain, slot, value)
		}
	}
	session.FilledSlots.Negate(prefill.NegatedSlots)

	if len(session.ActiveDomains) == 0 {
		session.ActiveDomains = append([]string{}, defaultActiveDomains...)
	}

	if err := s.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &model.StartResponse{
		SessionID:     session.ID,
		Status:        session.Status,
		ActiveDomains: session.ActiveDomains,
		Prefilled:     session.FilledSlots,
	}, nil
}

// Answer records the student's reply to the current question. Combo answers
// go through the structured parser; plain answers shorter than two words get
// one clarifier nudge per slot before being accepted verbatim.
func (s *InterviewService) Answer(ctx context.Context, sessionID string, req model.AnswerRequest) (*model.AnswerResponse, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	answerText := strings.TrimSpace(req.Answer)
	current := session.Meta.CurrentQuestion

	if current != nil && current.Type == model.QuestionTypeCombo {
		return s.answerCombo(ctx, session, current.ComboID, answerText)
	}

	domain, slot := req.Domain, req.Slot
	if current != nil {
		if domain == "" {
			domain = current.Domain
		}
		if slot == "" {
			slot = current.Slot
		}
	}
	if domain == "" || slot == "" {
		return nil, ErrMissingTarget
	}
	if !schema.IsKnownSlot(domain, slot) {
		return nil, ErrInvalidSlot
	}
	if answerText == "" {
		return nil, ErrAnswerRequired
	}

	key := domain + "." + slot
	if len(strings.Fields(answerText)) < 2 && !containsString(session.Meta.ClarifierUsed, key) {
		session.Meta.ClarifierUsed = append(session.Meta.ClarifierUsed, key)
		session.Meta.CurrentQuestion = &model.CurrentQuestion{
			Domain:   domain,
			Slot:     slot,
			Question: ClarifierQuestion,
		}
		session.History = append(session.History,
			model.Turn{Role: "user", Text: answerText},
			model.Turn{Role: "assistant", Text: ClarifierQuestion},
		)
		if err := s.saveSession(ctx, session); err != nil {
			return nil, err
		}
		return &model.AnswerResponse{
			NeedClarification: true,
			Domain:            domain,
			Slot:              slot,
			Question:          ClarifierQuestion,
		}, nil
	}

	session.History = append(session.History, model.Turn{Role: "user", Text: answerText})
	session.FilledSlots.Set(domain, slot, answerText)
	session.Meta.CurrentQuestion = nil

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return &model.AnswerResponse{
		OK:          true,
		FilledSlots: session.FilledSlots,
		Meta:        &session.Meta,
	}, nil
}

func (s *InterviewService) answerCombo(ctx context.Context, session *model.Session, comboID, answerText string) (*model.AnswerResponse, error) {
	parsed, ok := combo.Parse(comboID, answerText)
	if !ok {
		hint := ""
		if spec, found := combo.Get(comboID); found {
			hint = spec.Hint
		}
		return &model.AnswerResponse{
			NeedClarification: true,
			Question:          "Please follow the format:\n" + hint,
		}, nil
	}

	for _, assignment := range parsed.Assignments {
		session.FilledSlots.Set(assignment.Ref.Domain, assignment.Ref.Slot, assignment.Value)
	}
	if parsed.Emotion != "" {
		session.Meta.EmotionSignals = append(session.Meta.EmotionSignals, parsed.Emotion)
	}
	session.Meta.CurrentQuestion = nil
	session.History = append(session.History, model.Turn{Role: "user", Text: answerText})

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return &model.AnswerResponse{
		OK:          true,
		FilledSlots: session.FilledSlots,
		Meta:        &session.Meta,
	}, nil
}

// NextQuestion advances the interview: it re-offers any pending question,
// tries the combo catalog in the opening turns, consults the stop rule, then
// runs the planner until a valid question emerges or the session completes.
func (s *InterviewService) NextQuestion(ctx context.Context, sessionID string) (*model.NextQuestionResponse, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if current := session.Meta.CurrentQuestion; current != nil {
		return &model.NextQuestionResponse{
			Done:     false,
			Pending:  true,
			Domain:   current.Domain,
			Slot:     current.Slot,
			Question: current.Question,
			Message:  "Answer the current question first",
			Meta:     &session.Meta,
		}, nil
	}

	rawText := session.RawInitialText
	s.ensureActiveDomains(ctx, session)

	asked := session.Meta.TotalQuestionsAsked
	if asked <= 2 {
		if resp, offered, err := s.tryCombo(ctx, session, rawText, asked); err != nil {
			return nil, err
		} else if offered {
			return resp, nil
		}
	}

	missing := session.FilledSlots.Missing(session.ActiveDomains)
	if planner.ShouldStop(asked, len(missing), s.minQuestions, s.maxQuestions) {
		return s.complete(ctx, session)
	}

	gate := func(userText, domain, slot string) bool {
		return s.gate.ShouldAskSlot(ctx, userText, domain, slot)
	}
	lastQuestion := strings.TrimSpace(session.Meta.LastQuestion)

	var question, domain, slot string
	maxAttempts := len(missing) + 3
	for attempts := 0; attempts < maxAttempts; attempts++ {
		missing = session.FilledSlots.Missing(session.ActiveDomains)
		ref, ok := planner.PickNext(
			session.ActiveDomains,
			missing,
			session.Meta.DomainQuestionCount,
			s.maxDomainQuestions,
			rawText,
			session.FilledSlots,
			session.Meta.Causes,
			gate,
		)
		if !ok {
			return s.complete(ctx, session)
		}
		domain, slot = ref.Domain, ref.Slot

		if slot == planner.GenericSlot {
			genericSlot, genericQuestion, found := schema.GenericDomainQuestion(domain)
			if !found {
				continue
			}
			if genericQuestion == lastQuestion {
				session.FilledSlots.Negate([]string{genericSlot})
				continue
			}
			slot, question = genericSlot, genericQuestion
			break
		}

		question = s.questions.GenerateQuestion(ctx, domain, slot, QuestionContext{
			UserText:     rawText,
			Excerpt:      domainExcerpt(session, domain),
			Filled:       session.FilledSlots,
			LastQuestion: lastQuestion,
		})
		if question != "" {
			break
		}

		if genericSlot, genericQuestion, found := schema.GenericDomainQuestion(domain); found {
			if genericQuestion == lastQuestion {
				session.FilledSlots.Negate([]string{genericSlot})
				continue
			}
			slot, question = genericSlot, genericQuestion
			break
		}

		session.FilledSlots.Negate([]string{slot})
	}

	if question == "" {
		return s.complete(ctx, session)
	}

	session.History = append(session.History, model.Turn{Role: "assistant", Text: question})
	session.Meta.TotalQuestionsAsked = asked + 1
	if session.Meta.DomainQuestionCount == nil {
		session.Meta.DomainQuestionCount = map[string]int{}
	}
	session.Meta.DomainQuestionCount[domain]++
	session.Meta.CurrentQuestion = &model.CurrentQuestion{Domain: domain, Slot: slot, Question: question}
	session.Meta.LastQuestion = question

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return &model.NextQuestionResponse{
		Done:     false,
		Domain:   domain,
		Slot:     slot,
		Question: question,
		Meta:     &session.Meta,
	}, nil
}

// tryCombo offers a combined prompt in the opening turns. A combo that is
// selected but fails to compose is abandoned for this turn; selection is not
// retried against later catalog entries.
func (s *InterviewService) tryCombo(ctx context.Context, session *model.Session, rawText string, asked int) (*model.NextQuestionResponse, bool, error) {
	comboID, ok := combo.Select(rawText, asked, session.Meta.ComboHistory, session.FilledSlots)
	if !ok {
		return nil, false, nil
	}
	question, ok := combo.Compose(comboID, session.FilledSlots)
	if !ok {
		return nil, false, nil
	}
	spec, _ := combo.Get(comboID)

	session.Meta.TotalQuestionsAsked = asked + 1
	session.Meta.CurrentQuestion = &model.CurrentQuestion{
		Type:     model.QuestionTypeCombo,
		ComboID:  comboID,
		Question: question,
	}
	session.Meta.ComboHistory = append(session.Meta.ComboHistory, comboID)
	session.History = append(session.History, model.Turn{Role: "assistant", Text: question})

	if err := s.saveSession(ctx, session); err != nil {
		return nil, false, err
	}
	return &model.NextQuestionResponse{
		Done:     false,
		Combo:    true,
		Question: question,
		Hint:     spec.Hint,
		Meta:     &session.Meta,
	}, true, nil
}

// complete closes the interview and generates the popup batch.
func (s *InterviewService) complete(ctx context.Context, session *model.Session) (*model.NextQuestionResponse, error) {
	session.Status = model.SessionCompleted

	signals := append([]string{}, session.Meta.EmotionSignals...)
	for _, inferred := range session.FilledSlots.InferEmotionSignals() {
		if !containsString(signals, inferred) {
			signals = append(signals, inferred)
		}
	}
	session.Meta.EmotionSignals = signals
	session.Popups = s.popups.GeneratePopups(ctx, session.FilledSlots, signals)

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return &model.NextQuestionResponse{
		Done:        true,
		Status:      session.Status,
		PopupsReady: true,
		PopupsCount: len(session.Popups),
		FilledSlots: session.FilledSlots,
		Meta:        &session.Meta,
	}, nil
}

// Status returns the session's public state.
func (s *InterviewService) Status(ctx context.Context, sessionID string) (*model.StatusResponse, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &model.StatusResponse{
		SessionID:     session.ID,
		Status:        session.Status,
		ActiveDomains: session.ActiveDomains,
		FilledSlots:   session.FilledSlots,
		Meta:          &session.Meta,
	}, nil
}

// Debug exposes the full stored session including the popup batch.
func (s *InterviewService) Debug(ctx context.Context, sessionID string) (*model.DebugResponse, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &model.DebugResponse{
		ID:          session.ID,
		Status:      session.Status,
		PopupsCount: len(session.Popups),
		Popups:      session.Popups,
		FilledSlots: session.FilledSlots,
		Meta:        &session.Meta,
	}, nil
}

// StartSimulation replays the completed session's popups over the live
// channel and returns how many were scheduled.
func (s *InterviewService) StartSimulation(ctx context.Context, sessionID string) (int, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if session.Status != model.SessionCompleted {
		return 0, ErrNotCompleted
	}
	replayPopups(s.broadcaster, session.ID, session.Popups)
	return len(session.Popups), nil
}

// TestPopup pushes one fixed popup so a client can verify its socket wiring.
func (s *InterviewService) TestPopup(ctx context.Context, sessionID string) (*model.Popup, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	popup := model.Popup{
		Type:    "distraction",
		Message: "Test popup\nIf you see this, the socket works.",
		TTL:     8000,
	}
	if s.broadcaster != nil {
		s.broadcaster.Emit(session.ID, "popup", popup)
	}
	return &popup, nil
}

// ensureActiveDomains re-derives the active domain list when a session
// somehow lost it: components first, then causes, then the default trio.
func (s *InterviewService) ensureActiveDomains(ctx context.Context, session *model.Session) {
	if len(session.ActiveDomains) > 0 {
		return
	}
	session.ActiveDomains = s.causes.ExtractComponents(ctx, session.RawInitialText)
	if len(session.ActiveDomains) > 0 {
		return
	}
	if session.Meta.Causes == nil {
		session.Meta.Causes = s.causes.DetectCauses(ctx, session.RawInitialText)
	}
	session.ActiveDomains = planner.ActivateDomainsFromCauses(session.Meta.Causes)
	if len(session.ActiveDomains) == 0 {
		session.ActiveDomains = append([]string{}, defaultActiveDomains...)
	}
}

// domainExcerpt summarizes what the profile already holds for a domain so
// question generation can personalize.
func domainExcerpt(session *model.Session, domain string) string {
	get := func(slot string) string {
		v, _ := session.FilledSlots.Get(domain, slot)
		return v
	}
	switch domain {
	case "academic_confidence":
		weak, last := get("weak_subject"), get("last_test_experience")
		if weak != "" || last != "" {
			return fmt.Sprintf("Weak in %s. Last test felt %s.", weak, last)
		}
	case "family_pressure":
		member, expect := get("family_member"), get("expectation_type")
		if member != "" || expect != "" {
			return fmt.Sprintf("Family member %s expects %s.", member, expect)
		}
	case "distractions":
		friend, app := get("friend_name"), get("phone_app")
		if friend != "" || app != "" {
			return fmt.Sprintf("Distractions include %s and app %s.", friend, app)
		}
	}
	return ""
}

func (s *InterviewService) getSession(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.store.GetByID(ctx, sessionID)
	if err != nil || session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *InterviewService) activeSession(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionActive {
		return nil, ErrSessionNotActive
	}
	return session, nil
}

func (s *InterviewService) saveSession(ctx context.Context, session *model.Session) error {
	session.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
