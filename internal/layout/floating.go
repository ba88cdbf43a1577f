package layout

// Floating leaves every client at its own geometry. Computing it restores
// the client-owned geometry recorded in the snapshot, which is what brings
// windows back after switching away from a tiled layout.
type Floating struct{}

// NewFloating returns the floating layout.
func NewFloating() *Floating { return &Floating{} }

func (*Floating) Name() string { return "floating" }

func (*Floating) Style() Style { return StyleFloating }

func (*Floating) ReceiveUpdate(Update) {}

func (*Floating) Compute(snap Snapshot, _ Context) []Action {
	var actions []Action
	for _, c := range snap.Clients {
		actions = append(actions, resize(c.ID, c.Geom))
	}
	return actions
}
