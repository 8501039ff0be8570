package checkout

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"campreg/internal/domain"
)

// DefaultTTL is the freshness window for persisted sessions.
const DefaultTTL = 24 * time.Hour

// persistedState is the stored layout: the full state plus a save
// timestamp used for the freshness check at load.
type persistedState struct {
	domain.CheckoutState
	SavedAt time.Time `json:"_savedAt"`
}

// Options tune engine construction. Zero values fall back to sane
// defaults; CampSlug, when set, discards any persisted session whose
// embedded camp slug differs (prevents cross-camp state bleed).
type Options struct {
	Logger   *log.Logger
	Now      func() time.Time
	TTL      time.Duration
	CampSlug string
}

// Engine owns one in-progress registration. Commands mutate the state and
// persist it after every transition; totals are always derived on read.
// All id-scoped commands are no-ops on unknown ids. Store failures are
// logged and swallowed; the engine never surfaces an error to callers.
type Engine struct {
	store  Store
	key    string
	logger *log.Logger
	now    func() time.Time
	ttl    time.Duration
	state  domain.CheckoutState
}

// New builds an engine for the given session key, rehydrating from the
// store when a fresh, parseable, slug-matching session exists and starting
// from defaults otherwise.
func New(ctx context.Context, store Store, sessionKey string, opts Options) *Engine {
	e := &Engine{
		store:  store,
		key:    sessionKey,
		logger: opts.Logger,
		now:    opts.Now,
		ttl:    opts.TTL,
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard, "", 0)
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.ttl <= 0 {
		e.ttl = DefaultTTL
	}
	e.state = e.rehydrate(ctx, opts.CampSlug)
	return e
}

func (e *Engine) rehydrate(ctx context.Context, campSlug string) domain.CheckoutState {
	blob, ok, err := e.store.Load(ctx, e.key)
	if err != nil {
		e.logger.Printf("checkout: load key=%s error=%v", e.key, err)
		return e.newState()
	}
	if !ok {
		return e.newState()
	}
	var saved persistedState
	if err := json.Unmarshal(blob, &saved); err != nil {
		e.logger.Printf("checkout: discard malformed session key=%s error=%v", e.key, err)
		return e.newState()
	}
	if saved.SavedAt.IsZero() || e.now().Sub(saved.SavedAt) > e.ttl {
		e.logger.Printf("checkout: discard stale session key=%s savedAt=%s", e.key, saved.SavedAt)
		return e.newState()
	}
	if campSlug != "" && (saved.CampSession == nil || saved.CampSession.Slug != campSlug) {
		e.logger.Printf("checkout: discard mismatched session key=%s want=%s", e.key, campSlug)
		return e.newState()
	}
	if len(saved.Campers) == 0 {
		saved.Campers = []domain.Camper{e.blankCamper()}
	}
	return saved.CheckoutState
}

// newState returns the initial state: first step, one blank camper.
func (e *Engine) newState() domain.CheckoutState {
	return domain.CheckoutState{
		Step:    domain.StepCamp,
		Campers: []domain.Camper{e.blankCamper()},
	}
}

func (e *Engine) blankCamper() domain.Camper {
	return domain.Camper{
		ID:           uuid.NewString(),
		IsNewAthlete: true,
		Sex:          domain.CamperSex,
	}
}

// State returns a copy of the current state.
func (e *Engine) State() domain.CheckoutState {
	return e.state
}

// Totals derives the current money breakdown.
func (e *Engine) Totals() domain.Totals {
	return DeriveTotals(e.state)
}

// CanProceed reports whether the current step's gate is satisfied.
func (e *Engine) CanProceed() bool {
	return CanProceed(e.state)
}

// SetCamp replaces the camp session. Switching to a different camp id
// clears the selected add-ons (they are camp-specific); re-affirming the
// same camp, e.g. after a background refresh, keeps them.
func (e *Engine) SetCamp(ctx context.Context, camp domain.CampSession) {
	if e.state.CampSession == nil || e.state.CampSession.ID != camp.ID {
		e.state.SelectedAddOns = nil
	}
	e.state.CampSession = &camp
	for i := range e.state.Campers {
		e.recomputeEligibility(&e.state.Campers[i])
	}
	e.persist(ctx)
}

// AddCamper appends a fresh camper entry.
func (e *Engine) AddCamper(ctx context.Context) {
	e.state.Campers = append(e.state.Campers, e.blankCamper())
	e.persist(ctx)
}

// RemoveCamper drops the camper and any add-ons scoped to it. Removing the
// last remaining camper is a no-op: the list never becomes empty.
func (e *Engine) RemoveCamper(ctx context.Context, id string) {
	if len(e.state.Campers) <= 1 {
		return
	}
	idx := e.camperIndex(id)
	if idx < 0 {
		return
	}
	e.state.Campers = append(e.state.Campers[:idx], e.state.Campers[idx+1:]...)
	var kept []domain.AddOnSelection
	for _, a := range e.state.SelectedAddOns {
		if a.CamperID != nil && *a.CamperID == id {
			continue
		}
		kept = append(kept, a)
	}
	e.state.SelectedAddOns = kept
	e.persist(ctx)
}

// CamperPatch is a partial camper update; nil fields are left unchanged.
type CamperPatch struct {
	FirstName             *string                `json:"firstName,omitempty"`
	LastName              *string                `json:"lastName,omitempty"`
	DateOfBirth           *string                `json:"dateOfBirth,omitempty"`
	Grade                 *string                `json:"grade,omitempty"`
	TShirtSize            *string                `json:"tshirtSize,omitempty"`
	MedicalNotes          *string                `json:"medicalNotes,omitempty"`
	Allergies             *string                `json:"allergies,omitempty"`
	SpecialConsiderations *string                `json:"specialConsiderations,omitempty"`
	AuthorizedPickups     *[]domain.PickupContact `json:"authorizedPickups,omitempty"`
}

// UpdateCamper merges the patch into the camper. A changed date of birth
// recomputes age and eligibility against the active camp.
func (e *Engine) UpdateCamper(ctx context.Context, id string, patch CamperPatch) {
	idx := e.camperIndex(id)
	if idx < 0 {
		return
	}
	c := &e.state.Campers[idx]
	setIf(&c.FirstName, patch.FirstName)
	setIf(&c.LastName, patch.LastName)
	setIf(&c.Grade, patch.Grade)
	setIf(&c.TShirtSize, patch.TShirtSize)
	setIf(&c.MedicalNotes, patch.MedicalNotes)
	setIf(&c.Allergies, patch.Allergies)
	setIf(&c.SpecialConsiderations, patch.SpecialConsiderations)
	if patch.AuthorizedPickups != nil {
		c.AuthorizedPickups = *patch.AuthorizedPickups
	}
	if patch.DateOfBirth != nil {
		c.DateOfBirth = *patch.DateOfBirth
		e.recomputeEligibility(c)
	}
	e.persist(ctx)
}

// SelectExistingAthlete prefills the camper from a stored athlete profile.
func (e *Engine) SelectExistingAthlete(ctx context.Context, id string, athlete domain.Athlete) {
	idx := e.camperIndex(id)
	if idx < 0 {
		return
	}
	c := &e.state.Campers[idx]
	athleteID := athlete.ID
	c.AthleteID = &athleteID
	c.IsNewAthlete = false
	c.FirstName = athlete.FirstName
	c.LastName = athlete.LastName
	c.DateOfBirth = athlete.DateOfBirth
	c.Grade = athlete.Grade
	c.TShirtSize = athlete.TShirtSize
	c.MedicalNotes = athlete.MedicalNotes
	c.Allergies = athlete.Allergies
	e.recomputeEligibility(c)
	e.persist(ctx)
}

// SetNewAthleteMode resets the camper to blank defaults, keeping its id.
func (e *Engine) SetNewAthleteMode(ctx context.Context, id string) {
	idx := e.camperIndex(id)
	if idx < 0 {
		return
	}
	blank := e.blankCamper()
	blank.ID = id
	e.state.Campers[idx] = blank
	e.persist(ctx)
}

// ParentPatch is a partial parent-info update; nil fields are unchanged.
type ParentPatch struct {
	FirstName                    *string `json:"firstName,omitempty"`
	LastName                     *string `json:"lastName,omitempty"`
	Email                        *string `json:"email,omitempty"`
	Phone                        *string `json:"phone,omitempty"`
	Address                      *string `json:"address,omitempty"`
	City                         *string `json:"city,omitempty"`
	State                        *string `json:"state,omitempty"`
	Zip                          *string `json:"zip,omitempty"`
	EmergencyContactName         *string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone        *string `json:"emergencyContactPhone,omitempty"`
	EmergencyContactRelationship *string `json:"emergencyContactRelationship,omitempty"`
}

// UpdateParent shallow-merges the patch into the parent record.
func (e *Engine) UpdateParent(ctx context.Context, patch ParentPatch) {
	p := &e.state.ParentInfo
	setIf(&p.FirstName, patch.FirstName)
	setIf(&p.LastName, patch.LastName)
	setIf(&p.Email, patch.Email)
	setIf(&p.Phone, patch.Phone)
	setIf(&p.Address, patch.Address)
	setIf(&p.City, patch.City)
	setIf(&p.State, patch.State)
	setIf(&p.Zip, patch.Zip)
	setIf(&p.EmergencyContactName, patch.EmergencyContactName)
	setIf(&p.EmergencyContactPhone, patch.EmergencyContactPhone)
	setIf(&p.EmergencyContactRelationship, patch.EmergencyContactRelationship)
	e.persist(ctx)
}

// SetParentFromProfile overwrites all parent fields from a stored profile.
func (e *Engine) SetParentFromProfile(ctx context.Context, profile domain.ParentProfile) {
	e.state.ParentInfo = domain.ParentInfo{
		FirstName:                    profile.FirstName,
		LastName:                     profile.LastName,
		Email:                        profile.Email,
		Phone:                        profile.Phone,
		Address:                      profile.Address,
		City:                         profile.City,
		State:                        profile.State,
		Zip:                          profile.Zip,
		EmergencyContactName:         profile.EmergencyContactName,
		EmergencyContactPhone:        profile.EmergencyContactPhone,
		EmergencyContactRelationship: profile.EmergencyContactRelationship,
	}
	e.persist(ctx)
}

// SetSquad sets or clears the squad linkage.
func (e *Engine) SetSquad(ctx context.Context, squadID *string) {
	e.state.SquadID = squadID
	e.persist(ctx)
}

// AddAddOn appends the selection, or merges quantities when a line with the
// same (addonId, variantId, camperId) key already exists.
func (e *Engine) AddAddOn(ctx context.Context, sel domain.AddOnSelection) {
	for i := range e.state.SelectedAddOns {
		if e.state.SelectedAddOns[i].SameKey(sel.AddOnID, sel.VariantID, sel.CamperID) {
			e.state.SelectedAddOns[i].Quantity += sel.Quantity
			e.persist(ctx)
			return
		}
	}
	e.state.SelectedAddOns = append(e.state.SelectedAddOns, sel)
	e.persist(ctx)
}

// RemoveAddOn removes the exact matching line.
func (e *Engine) RemoveAddOn(ctx context.Context, addonID string, variantID, camperID *string) {
	for i := range e.state.SelectedAddOns {
		if e.state.SelectedAddOns[i].SameKey(addonID, variantID, camperID) {
			e.state.SelectedAddOns = append(e.state.SelectedAddOns[:i], e.state.SelectedAddOns[i+1:]...)
			e.persist(ctx)
			return
		}
	}
}

// UpdateAddOnQuantity sets the quantity on the matching line; a quantity of
// zero or less removes it.
func (e *Engine) UpdateAddOnQuantity(ctx context.Context, addonID string, variantID, camperID *string, quantity int) {
	if quantity <= 0 {
		e.RemoveAddOn(ctx, addonID, variantID, camperID)
		return
	}
	for i := range e.state.SelectedAddOns {
		if e.state.SelectedAddOns[i].SameKey(addonID, variantID, camperID) {
			e.state.SelectedAddOns[i].Quantity = quantity
			e.persist(ctx)
			return
		}
	}
}

// ApplyPromo sets the promo code, replacing any existing one.
func (e *Engine) ApplyPromo(ctx context.Context, promo domain.PromoCode) {
	e.state.PromoCode = &promo
	e.persist(ctx)
}

// RemovePromo clears the applied promo.
func (e *Engine) RemovePromo(ctx context.Context) {
	e.state.PromoCode = nil
	e.persist(ctx)
}

// SetWaitlistMode switches which step order Next/PrevStep walk.
func (e *Engine) SetWaitlistMode(ctx context.Context, waitlist bool) {
	e.state.IsWaitlistMode = waitlist
	e.persist(ctx)
}

// SetStep jumps directly to a step; unknown steps are ignored.
func (e *Engine) SetStep(ctx context.Context, step domain.Step) {
	if !ValidStep(step) {
		return
	}
	e.state.Step = step
	e.persist(ctx)
}

// NextStep advances one position along the active order; no-op at the end
// or when the current step is not on the active order.
func (e *Engine) NextStep(ctx context.Context) {
	order := activeOrder(e.state.IsWaitlistMode)
	idx := stepIndex(order, e.state.Step)
	if idx < 0 || idx >= len(order)-1 {
		return
	}
	e.state.Step = order[idx+1]
	e.persist(ctx)
}

// PrevStep moves one position back; no-op at the first step.
func (e *Engine) PrevStep(ctx context.Context) {
	order := activeOrder(e.state.IsWaitlistMode)
	idx := stepIndex(order, e.state.Step)
	if idx <= 0 {
		return
	}
	e.state.Step = order[idx-1]
	e.persist(ctx)
}

// Reset restores the initial state and clears the persisted session.
func (e *Engine) Reset(ctx context.Context) {
	e.state = e.newState()
	if err := e.store.Delete(ctx, e.key); err != nil {
		e.logger.Printf("checkout: delete key=%s error=%v", e.key, err)
	}
}

func (e *Engine) camperIndex(id string) int {
	for i, c := range e.state.Campers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) recomputeEligibility(c *domain.Camper) {
	age, ok := ageAt(c.DateOfBirth, e.now())
	if !ok {
		c.Age = 0
		c.IsEligible = false
		return
	}
	c.Age = age
	camp := e.state.CampSession
	c.IsEligible = camp != nil && age >= camp.MinAge && age <= camp.MaxAge
}

// ageAt computes the whole-year age at now, decrementing when the birth
// month/day has not yet occurred this year.
func ageAt(dateOfBirth string, now time.Time) (int, bool) {
	dob, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return 0, false
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}

// persist writes the state after a transition. At a terminal step the
// stored session is removed instead, so a finished checkout never
// rehydrates.
func (e *Engine) persist(ctx context.Context) {
	if isTerminal(e.state.Step) {
		if err := e.store.Delete(ctx, e.key); err != nil {
			e.logger.Printf("checkout: delete key=%s error=%v", e.key, err)
		}
		return
	}
	blob, err := json.Marshal(persistedState{CheckoutState: e.state, SavedAt: e.now()})
	if err != nil {
		e.logger.Printf("checkout: marshal key=%s error=%v", e.key, err)
		return
	}
	if err := e.store.Save(ctx, e.key, blob); err != nil {
		e.logger.Printf("checkout: save key=%s error=%v", e.key, err)
	}
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
