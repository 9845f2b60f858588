package variants

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/almatienda/catalog-service/internal/pkg/ident"
)

// State is the synchronizer's position in the regeneration state machine.
type State int

const (
	// StateIdle: selection and variation list agree, nothing pending.
	StateIdle State = iota
	// StatePendingRegeneration: the selection changed but reference data has
	// not arrived yet, so the variation list could not be rebuilt.
	StatePendingRegeneration
	// StateConfirmationRequested: an edit-mode toggle was deferred because
	// applying it would discard entered prices or stock. The surrounding UI
	// must call Confirm or Cancel.
	StateConfirmationRequested
	// StateRegenerated: the variation list was rebuilt from the selection.
	StateRegenerated
	// StateCancelled: the user declined a destructive regeneration; the
	// deferred toggle was discarded and nothing was mutated.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePendingRegeneration:
		return "pending_regeneration"
	case StateConfirmationRequested:
		return "confirmation_requested"
	case StateRegenerated:
		return "regenerated"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// pendingToggle records a deferred term toggle awaiting confirmation.
type pendingToggle struct {
	GroupID int64
	TermID  int64
}

// SessionOptions configures a Synchronizer for one edit session.
type SessionOptions struct {
	// EditMode is true when editing a persisted product. Only edit mode ever
	// asks for confirmation; creating a new product regenerates silently.
	EditMode bool
	// Variable marks a configurable product. Non-variable products bypass the
	// generator and keep a single implicit variation.
	Variable bool
	// Selection is the initial term selection, reconstructed from persisted
	// variations in edit mode. Nil means empty.
	Selection *Selection
	// Variations are the persisted variations loaded by the adapter in edit
	// mode. They stand until a selection change forces regeneration.
	Variations []*Variation
	// SKUs maps persisted variation ids to their SKU strings.
	SKUs map[string]string
	// Logger is injected rather than taken from a package global so the
	// engine stays free of ambient state.
	Logger zerolog.Logger
}

// Synchronizer reconciles generated combinations against the current
// variation list. It decides, on every selection change and on reference data
// arrival, whether to regenerate, and guards destructive regeneration behind
// user confirmation in edit mode.
//
// Regenerating after edits exist necessarily drops per-combination prices and
// stock (there is no cell-level merge across attribute changes). That is a
// deliberate data-loss guard, not a bug.
type Synchronizer struct {
	editMode bool
	variable bool

	selection  *Selection
	variations []*Variation
	skus       map[string]string

	priceLists []PriceList
	warehouses []Warehouse
	stockTypes []StockType
	refLoaded  bool

	lastFingerprint string
	pending         *pendingToggle
	dirty           bool
	state           State

	logger zerolog.Logger
}

// NewSynchronizer starts an edit session. The initial selection fingerprint is
// recorded without regenerating, so persisted variations survive form load.
func NewSynchronizer(opts SessionOptions) *Synchronizer {
	sel := opts.Selection
	if sel == nil {
		sel = NewSelection()
	}
	skus := opts.SKUs
	if skus == nil {
		skus = make(map[string]string)
	}
	s := &Synchronizer{
		editMode:   opts.EditMode,
		variable:   opts.Variable,
		selection:  sel,
		variations: opts.Variations,
		skus:       skus,
		state:      StateIdle,
		logger:     opts.Logger.With().Str("component", "variant_sync").Logger(),
	}
	s.lastFingerprint = s.fingerprint()
	return s
}

// SetReferenceData supplies the price lists, warehouses and stock types the
// engine seeds new variations with. Arrival counts as a relevant state change:
// a selection change that happened before reference data was loaded is
// regenerated now.
func (s *Synchronizer) SetReferenceData(priceLists []PriceList, warehouses []Warehouse, stockTypes []StockType) {
	s.priceLists = priceLists
	s.warehouses = warehouses
	s.stockTypes = stockTypes
	s.refLoaded = true
	s.maybeRegenerate()
}

// Toggle requests a term toggle. In edit mode, when the product still has
// persisted variations and at least one variation carries a price or stock
// above zero, the toggle is deferred and confirmation is requested instead of
// applying immediately; the returned state is StateConfirmationRequested and
// ConfirmationPending reports true until Confirm or Cancel is called.
//
// The guard intentionally checks for entered data across all variations, not
// just the ones the toggle would affect. Over-asking costs one click; silent
// data loss costs the user's work.
func (s *Synchronizer) Toggle(groupID, termID int64) State {
	if s.pending != nil {
		// A confirmation is already outstanding; the dialog blocks input.
		return s.state
	}

	if s.editMode && s.hasPersisted() && s.hasEnteredData() {
		s.pending = &pendingToggle{GroupID: groupID, TermID: termID}
		s.state = StateConfirmationRequested
		confirmations.WithLabelValues("requested").Inc()
		s.logger.Debug().
			Int64("group_id", groupID).
			Int64("term_id", termID).
			Msg("Toggle deferred, confirmation requested")
		return s.state
	}

	s.selection.Toggle(groupID, termID)
	s.state = StatePendingRegeneration
	s.maybeRegenerate()
	return s.state
}

// Confirm applies the deferred toggle, marks the attribute set dirty and
// regenerates. The dirty flag later becomes the update request's
// resetVariations field.
func (s *Synchronizer) Confirm() {
	if s.pending == nil {
		return
	}
	p := *s.pending
	s.pending = nil
	confirmations.WithLabelValues("confirmed").Inc()

	s.selection.Toggle(p.GroupID, p.TermID)
	s.dirty = true
	s.state = StatePendingRegeneration
	s.maybeRegenerate()
}

// Cancel discards the deferred toggle. No mutation occurs and the dirty flag
// stays unset.
func (s *Synchronizer) Cancel() {
	if s.pending == nil {
		return
	}
	s.pending = nil
	s.state = StateCancelled
	confirmations.WithLabelValues("cancelled").Inc()
}

// ClearGroup removes a whole group from the selection and regenerates.
func (s *Synchronizer) ClearGroup(groupID int64) {
	if s.pending != nil {
		return
	}
	s.selection.Clear(groupID)
	s.state = StatePendingRegeneration
	s.maybeRegenerate()
}

// SetVariable switches the product between variable and non-variable and
// rebuilds the variation list accordingly.
func (s *Synchronizer) SetVariable(variable bool) {
	if s.variable == variable {
		return
	}
	s.variable = variable
	if s.refLoaded {
		s.regenerate()
	} else {
		s.state = StatePendingRegeneration
	}
}

// maybeRegenerate rebuilds the variation list when the selection fingerprint
// moved, the product is variable and reference data is loaded. Non-variable
// products regenerate their implicit variation only on an explicit
// SetVariable transition.
func (s *Synchronizer) maybeRegenerate() {
	if !s.refLoaded {
		s.state = StatePendingRegeneration
		return
	}
	if !s.variable {
		if len(s.variations) == 0 {
			s.regenerate()
		} else {
			s.state = StateIdle
		}
		return
	}
	if s.fingerprint() == s.lastFingerprint {
		s.state = StateIdle
		return
	}
	s.regenerate()
}

// regenerate replaces the variation list wholesale from the current selection
// and clears the SKU map; new variations have no SKU until persisted.
func (s *Synchronizer) regenerate() {
	if s.variable {
		combos := Combine(s.selection.Groups())
		fresh := make([]*Variation, len(combos))
		for i, attrs := range combos {
			fresh[i] = NewDraftVariation(attrs, s.priceLists)
		}
		s.variations = fresh
	} else {
		s.variations = []*Variation{NewImplicitVariation(s.priceLists, s.warehouses)}
	}

	s.skus = make(map[string]string)
	s.lastFingerprint = s.fingerprint()
	s.state = StateRegenerated

	mode := "create"
	if s.editMode {
		mode = "edit"
	}
	regenerations.WithLabelValues(mode).Inc()
	combinationCount.Observe(float64(len(s.variations)))
	s.logger.Debug().Int("count", len(s.variations)).Msg("Variations regenerated")
}

// hasPersisted reports whether any current variation originates from the
// database rather than this session.
func (s *Synchronizer) hasPersisted() bool {
	for _, v := range s.variations {
		if ident.HasPrefix(v.ID, ident.PrefixVariation) {
			return true
		}
	}
	return false
}

// hasEnteredData reports whether any variation carries a price or stock value
// above zero.
func (s *Synchronizer) hasEnteredData() bool {
	for _, v := range s.variations {
		if v.HasValues() {
			return true
		}
	}
	return false
}

// fingerprint captures the ordered selection content, so that both group-set
// changes and term changes within a group count as selection moves.
func (s *Synchronizer) fingerprint() string {
	groups := s.selection.Groups()
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.FormatInt(g.GroupID, 10))
		b.WriteByte('=')
		for j, t := range g.TermIDs {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(t, 10))
		}
	}
	return b.String()
}

// Variations returns the current variation list.
func (s *Synchronizer) Variations() []*Variation { return s.variations }

// SKU returns the persisted SKU for a variation id, if any. The map is
// cleared whenever variations are regenerated.
func (s *Synchronizer) SKU(id string) (string, bool) {
	sku, ok := s.skus[id]
	return sku, ok
}

// Selection exposes the current term selection for reads.
func (s *Synchronizer) Selection() *Selection { return s.selection }

// ConfirmationPending is the "show reset-variations dialog" signal.
func (s *Synchronizer) ConfirmationPending() bool { return s.pending != nil }

// PendingChange returns the deferred toggle while a confirmation is
// outstanding.
func (s *Synchronizer) PendingChange() (groupID, termID int64, ok bool) {
	if s.pending == nil {
		return 0, 0, false
	}
	return s.pending.GroupID, s.pending.TermID, true
}

// Dirty reports whether the attribute set changed destructively this session.
func (s *Synchronizer) Dirty() bool { return s.dirty }

// Variable reports the current product mode.
func (s *Synchronizer) Variable() bool { return s.variable }

// CurrentState returns the synchronizer's state machine position.
func (s *Synchronizer) CurrentState() State { return s.state }
