package rdkit

import "sync"

// Reaction owns one native reaction pickle.  It is immutable after
// construction.
type Reaction struct {
	h     *Handle
	mu    sync.RWMutex
	buf   buffer
	input string
}

var _ Entity = (*Reaction)(nil)

// ReactionFromSMARTS parses reaction SMARTS such as "[CH3:1][OH:2]>>[CH2:1]=[OH0:2]".
func (h *Handle) ReactionFromSMARTS(text string) (*Reaction, error) {
	b, err := h.construct("get_rxn", func(size *uintptr) uintptr {
		return h.lib.GetRxn(text, size, "{}")
	})
	if err != nil {
		return nil, err
	}
	r := &Reaction{h: h, buf: b, input: text}
	h.trackFinalizer(r, (*Reaction).finalize)
	return r, nil
}

func (r *Reaction) finalize() { _ = r.Close() }

// Kind reports KindReaction.
func (r *Reaction) Kind() Kind { return KindReaction }

// Input returns the SMARTS the reaction was parsed from.
func (r *Reaction) Input() string { return r.input }

func (r *Reaction) String() string { return "Reaction(" + r.input + ")" }

// Close frees the native buffer.  Closing twice is a no-op.
func (r *Reaction) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.h.release(&r.buf)
	return nil
}

// SVG depicts the reaction.  A zero width or height selects the default.
func (r *Reaction) SVG(width, height int) (string, error) {
	details, err := svgDetails(width, height)
	if err != nil {
		return "", err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.buf.empty() {
		return "", errReleased("reaction")
	}
	return r.h.callString("get_rxn_svg", func() uintptr {
		return r.h.lib.GetRxnSVG(r.buf.ptr, r.buf.size, details)
	})
}

// Clone parses the original input again.
func (r *Reaction) Clone() (*Reaction, error) {
	return r.h.ReactionFromSMARTS(r.input)
}

//Personal.AI order the ending
