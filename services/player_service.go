package services

import (
	"errors"
	"sort"

	"github.com/christopherhurt/AmbiguousGame/models"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrNotRegistered  = errors.New("player not registered")
)

// Thank you https://nameberry.com/list/45/Unisex-Baby-Names?all=1
var names = []string{
	"London", "Zion", "Murphy", "Salem", "Taylen", "Angel", "Brett", "Kylar", "Jaziah", "Lake",
	"Reilly", "Emery", "Campbell", "Avery", "Scout", "Ramsey", "Rory", "Micah", "Alexis", "River",
	"Armani", "Dakotah", "Kennedy", "Azariah", "Sam", "Phoenix", "Jess", "Brighton", "Justice", "Jaidyn",
	"Parker", "Charlie", "Valentine", "Rio", "Robin", "Casey", "Dylan", "Kylin", "True", "Keegan",
	"Royal", "Kendall", "Sasha", "Hayden", "Dakota", "Gentry", "Austen", "Perry", "Drew", "Riley",
	"Quinn", "Eastyn", "Jael", "Toby", "Dominique", "Lane", "Reagan", "Timber", "Lennon", "Brady",
	"Jackie", "Gray", "Denver", "Payson", "Skyler", "Honor", "Payton", "Morgan", "Paxton", "Dana",
	"Sage", "Cypress", "Alex", "Timber", "Indiana", "Ellery", "Landry", "Sky", "Clarke", "Harper",
	"Sidney", "Jordan", "Teagan", "Jaden", "Reese", "Storm", "Amen", "Frankie", "Oakley", "Marlo",
	"Finley", "Ocean", "Sawyer", "Rowan", "Jazz", "Bailey", "Emerson", "Samar", "Harley", "Devon",
	"Ryley", "Flynn", "Yael", "Jalen", "Nikita", "Jules", "Cameron", "Ellington", "Taylor", "Hollis",
}

// NameFor derives a display name from a player id
func NameFor(id int) string {
	return names[id%len(names)]
}

type playerEntry struct {
	player *models.Player
	active bool
}

// PlayerService is the registry of connected players. Like WorldService it is
// owned by the session loop and does no locking of its own.
type PlayerService struct {
	players map[int]*playerEntry
	world   *WorldService
	nextID  int
}

// NewPlayerService creates an empty registry
func NewPlayerService(world *WorldService) *PlayerService {
	return &PlayerService{
		players: make(map[int]*playerEntry),
		world:   world,
	}
}

// Connect reserves the next id with a placeholder entry. Ids are never reused.
func (ps *PlayerService) Connect() *models.Player {
	id := ps.nextID
	ps.nextID++

	p := &models.Player{ID: id, Name: NameFor(id), Dir: models.DirDown}
	ps.players[id] = &playerEntry{player: p}
	return p
}

// Register replaces the placeholder with the client's payload and makes the
// player visible. The server keeps ownership of ID, Name and visited islands.
func (ps *PlayerService) Register(id int, payload models.Player) (*models.Player, error) {
	entry, ok := ps.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	visited := entry.player.VisitedIslands
	p := payload
	p.ID = id
	p.Name = entry.player.Name
	p.VisitedIslands = visited
	if p.VisitedIslands == nil {
		p.VisitedIslands = []int{}
	}
	ps.markIsland(&p)

	entry.player = &p
	entry.active = true
	return &p, nil
}

// Move overwrites the movement state of a registered player
func (ps *PlayerService) Move(id int, x, y float64, dir models.Direction, moving bool) (*models.Player, error) {
	entry, ok := ps.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if !entry.active {
		return nil, ErrNotRegistered
	}

	p := entry.player
	p.X, p.Y, p.Dir, p.Moving = x, y, dir, moving
	ps.markIsland(p)
	return p, nil
}

// Remove deletes a player's entry
func (ps *PlayerService) Remove(id int) (*models.Player, bool) {
	entry, ok := ps.players[id]
	if !ok {
		return nil, false
	}
	delete(ps.players, id)
	return entry.player, true
}

// GetPlayer returns the entry for id, registered or not
func (ps *PlayerService) GetPlayer(id int) (*models.Player, bool) {
	entry, ok := ps.players[id]
	if !ok {
		return nil, false
	}
	return entry.player, true
}

// Snapshot copies every registered player
func (ps *PlayerService) Snapshot() map[int]*models.Player {
	out := make(map[int]*models.Player, len(ps.players))
	for id, entry := range ps.players {
		if entry.active {
			out[id] = entry.player.Clone()
		}
	}
	return out
}

// ActiveIDs lists registered player ids in ascending order
func (ps *PlayerService) ActiveIDs() []int {
	ids := make([]int, 0, len(ps.players))
	for id, entry := range ps.players {
		if entry.active {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func (ps *PlayerService) markIsland(p *models.Player) {
	if ps.world == nil {
		return
	}
	cx, cy := p.Center()
	if island := ps.world.IslandUnder(cx, cy); island >= 0 {
		p.MarkIslandVisited(island)
	}
}
