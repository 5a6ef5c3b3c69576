package engine

import "math/rand"

// State is the lifecycle stage of the active piece.
type State int

const (
	StateSpawned State = iota
	StateFalling
	StateMoving
	StateRotating
	StateLocked
	StateToppedOut // terminal
)

func (s State) String() string {
	switch s {
	case StateSpawned:
		return "spawned"
	case StateFalling:
		return "falling"
	case StateMoving:
		return "moving"
	case StateRotating:
		return "rotating"
	case StateLocked:
		return "locked"
	case StateToppedOut:
		return "topped_out"
	default:
		return "unknown"
	}
}

// Command is one edge-triggered player input.
type Command int

const (
	MoveLeft Command = iota
	MoveRight
	SoftDrop
	RotateCW
	RotateCCW
)

func (c Command) String() string {
	switch c {
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case SoftDrop:
		return "SoftDrop"
	case RotateCW:
		return "RotateCW"
	case RotateCCW:
		return "RotateCCW"
	default:
		return "Unknown"
	}
}

// FallState holds the gravity counters. Both reset when a piece locks.
type FallState struct {
	FramesSinceLastDrop    int
	ConsecutiveFailedDrops int
}

// GravityResult describes what one ApplyGravity call did.
type GravityResult struct {
	Dropped      bool // A drop was attempted
	Moved        bool // The piece moved down one row
	Locked       bool // The piece was locked into the grid
	LinesCleared int  // Rows cleared by that lock
}

// ClearHandler is notified after every lock with the number of rows it cleared.
type ClearHandler interface {
	OnRowsCleared(rows int)
}

// ClearHandlerFunc adapts a plain function to ClearHandler.
type ClearHandlerFunc func(rows int)

// OnRowsCleared calls f(rows).
func (f ClearHandlerFunc) OnRowsCleared(rows int) {
	f(rows)
}

// Option configures a Board at construction.
type Option func(*Board)

// WithClearHandler registers h to be called after every lock.
func WithClearHandler(h ClearHandler) Option {
	return func(b *Board) {
		b.onClear = h
	}
}

// Board owns the grid, the active piece and the gravity counters.
// It is not safe for concurrent use; drive it from a single loop.
type Board struct {
	cfg     Config
	grid    *Grid
	rng     *rand.Rand
	onClear ClearHandler

	active    Piece
	hasActive bool
	next      Shape
	state     State
	fall      FallState

	linesCleared  int
	piecesLocked  int
	piecesSpawned int
}

// NewBoard validates cfg, seeds the shape generator once and spawns the
// first piece. Invalid configs return an error matching ErrInvalidConfig.
func NewBoard(cfg Config, seed int64, opts ...Option) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		cfg:  cfg,
		grid: NewGrid(cfg.Rows, cfg.Cols),
		rng:  rand.New(rand.NewSource(seed)),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.next = b.rollShape()
	if err := b.SpawnPiece(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) rollShape() Shape {
	return Shapes[b.rng.Intn(ShapeCount)]
}

// Config returns the construction parameters.
func (b *Board) Config() Config { return b.cfg }

// Grid returns the locked cells. The board owns the grid; callers should only read it.
func (b *Board) Grid() *Grid { return b.grid }

// Active returns the falling piece and whether there is one.
func (b *Board) Active() (Piece, bool) { return b.active, b.hasActive }

// Next returns the shape that the following spawn will use.
func (b *Board) Next() Shape { return b.next }

// State returns the current lifecycle stage.
func (b *Board) State() State { return b.state }

// ToppedOut reports whether the board reached its terminal state.
func (b *Board) ToppedOut() bool { return b.state == StateToppedOut }

// FallState returns a copy of the gravity counters.
func (b *Board) FallState() FallState { return b.fall }

// DropInterval returns the frames between gravity drops.
func (b *Board) DropInterval() int { return b.cfg.DropInterval() }

// LinesCleared returns the total number of rows cleared so far.
func (b *Board) LinesCleared() int { return b.linesCleared }

// PiecesLocked returns how many pieces have been locked into the grid.
func (b *Board) PiecesLocked() int { return b.piecesLocked }

// PiecesSpawned returns how many pieces have been placed on the board.
func (b *Board) PiecesSpawned() int { return b.piecesSpawned }

// SpawnPiece places the queued shape and queues a new uniformly random one.
// It returns ErrTopOut, without touching the grid, when the spawn cells are taken.
func (b *Board) SpawnPiece() error {
	if b.state == StateToppedOut {
		return ErrTopOut
	}
	shape := b.next
	b.next = b.rollShape()
	return b.SpawnShape(shape)
}

// SpawnShape places a piece of the given shape at its spawn layout,
// replacing any active piece. The queued next shape is left alone.
func (b *Board) SpawnShape(shape Shape) error {
	if b.state == StateToppedOut {
		return ErrTopOut
	}

	p := NewPiece(shape, b.cfg.Cols)
	b.fall = FallState{}
	if !p.Fits(b.grid) {
		b.active = Piece{}
		b.hasActive = false
		b.state = StateToppedOut
		return ErrTopOut
	}

	b.active = p
	b.hasActive = true
	b.state = StateSpawned
	b.piecesSpawned++
	return nil
}

// Update applies one command to the active piece and reports whether it moved.
// Illegal moves leave the piece where it is.
func (b *Board) Update(cmd Command) bool {
	if !b.hasActive {
		return false
	}

	var moved bool
	next := StateMoving
	switch cmd {
	case MoveLeft:
		moved = b.active.Translate(Left, b.grid)
	case MoveRight:
		moved = b.active.Translate(Right, b.grid)
	case SoftDrop:
		moved = b.active.Translate(Down, b.grid)
		next = StateFalling
	case RotateCW:
		moved = b.active.Rotate(Clockwise, b.grid)
		next = StateRotating
	case RotateCCW:
		moved = b.active.Rotate(CounterClockwise, b.grid)
		next = StateRotating
	}

	if moved {
		b.state = next
	}
	return moved
}

// ApplyGravity advances the drop counter by elapsedFrames. Once the counter
// reaches the drop interval it resets and the piece tries to fall one row.
// A failed drop counts towards the lock; a successful one resets the count.
// The piece locks on the first failure past LockThreshold.
func (b *Board) ApplyGravity(elapsedFrames int) (GravityResult, error) {
	var res GravityResult
	if !b.hasActive {
		if b.state == StateToppedOut {
			return res, ErrTopOut
		}
		return res, ErrNoActivePiece
	}
	if elapsedFrames <= 0 {
		return res, nil
	}

	b.fall.FramesSinceLastDrop += elapsedFrames
	if b.fall.FramesSinceLastDrop < b.cfg.DropInterval() {
		return res, nil
	}
	b.fall.FramesSinceLastDrop = 0
	res.Dropped = true

	if b.active.Fall(b.grid) {
		b.fall.ConsecutiveFailedDrops = 0
		b.state = StateFalling
		res.Moved = true
		return res, nil
	}

	b.fall.ConsecutiveFailedDrops++
	if b.fall.ConsecutiveFailedDrops <= LockThreshold {
		return res, nil
	}

	cleared, err := b.LockPiece()
	res.Locked = true
	res.LinesCleared = cleared
	return res, err
}

// LockPiece copies the active piece into the grid, clears every full row it
// touched (bottom to top) and spawns the next piece. The returned error is
// ErrTopOut when that spawn fails; the cleared count is valid either way.
func (b *Board) LockPiece() (int, error) {
	if !b.hasActive {
		return 0, ErrNoActivePiece
	}

	p := b.active
	b.active = Piece{}
	b.hasActive = false

	top, bottom := b.cfg.Rows, -1
	for _, c := range p.cells {
		b.grid.Occupy(c, p.Color())
		top = min(top, c.Y)
		bottom = max(bottom, c.Y)
	}
	b.state = StateLocked
	b.fall = FallState{}
	b.piecesLocked++

	cleared := 0
	for y := bottom; y >= top; {
		if b.CheckRow(y) {
			// Rows above moved down: look at y again, one less row to scan.
			cleared++
			top++
			continue
		}
		y--
	}
	b.linesCleared += cleared

	if b.onClear != nil {
		b.onClear.OnRowsCleared(cleared)
	}

	return cleared, b.SpawnPiece()
}

// CheckRow clears row y when every cell in it is occupied.
// It returns whether a clear happened.
func (b *Board) CheckRow(y int) bool {
	if !b.grid.RowFull(y) {
		return false
	}
	return b.ClearRow(y)
}

// ClearRow removes row y, shifts the rows above it down by one and inserts
// an empty row at the top. It refuses, returning false, when y is out of
// range or when the shift would push locked cells into the active piece.
func (b *Board) ClearRow(y int) bool {
	if y < 0 || y >= b.cfg.Rows {
		return false
	}
	if b.hasActive {
		for _, c := range b.active.cells {
			if c.Y <= y && b.grid.Occupied(Point{X: c.X, Y: c.Y - 1}) {
				return false
			}
		}
	}
	b.grid.RemoveRow(y)
	return true
}
