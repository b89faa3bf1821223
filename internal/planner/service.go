// Package planner holds the per-user session state for every collection and
// pushes each mutation through the persistence queue. Memory is the source
// of truth; saving is fire and forget.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"planner/internal/core"
	"planner/internal/log"
	"planner/internal/store"
)

// AnonymousUser partitions data for sessions without an identity.
const AnonymousUser = "anonymous"

// Queue accepts a document for eventual persistence. Enqueue must not
// block; the debounced writer implements this.
type Queue interface {
	Enqueue(key string, data []byte)
}

// Service owns one session per user. Each collection is loaded from the
// store exactly once per session; missing documents seed defaults.
type Service struct {
	store  store.Store
	queue  Queue
	scope  string
	logger *log.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu     sync.Mutex
	user   string
	loaded map[string]bool

	tasks      core.TaskList
	categories core.CategoryList
	wealth     core.Wealth
	cycles     core.CycleSet
	reviews    core.Reviews
	habits     core.HabitList
}

func NewService(st store.Store, queue Queue, scope string, logger *log.Logger) *Service {
	return &Service{
		store:    st,
		queue:    queue,
		scope:    scope,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

func (s *Service) session(user string) *session {
	if user == "" {
		user = AnonymousUser
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[user]
	if !ok {
		sess = &session{user: user, loaded: make(map[string]bool)}
		s.sessions[user] = sess
	}
	return sess
}

func (s *Service) key(user, collection string) string {
	return store.Key(s.scope, user, collection)
}

// ensure loads one collection into the session on first touch. Callers hold
// the session lock.
func (s *Service) ensure(ctx context.Context, sess *session, collection string) error {
	if sess.loaded[collection] {
		return nil
	}
	data, _, err := s.store.Load(ctx, s.key(sess.user, collection))
	if err != nil {
		return fmt.Errorf("load %s: %w", collection, err)
	}
	if err := sess.apply(collection, data); err != nil {
		return err
	}
	sess.loaded[collection] = true
	return nil
}

// apply decodes a document into the session, overwriting whatever is there.
// Empty data seeds the collection's defaults.
func (sess *session) apply(collection string, data []byte) error {
	var err error
	switch collection {
	case store.CollectionTasks:
		sess.tasks, err = decodeTasks(data)
	case store.CollectionCategories:
		sess.categories, err = decodeCategories(data)
	case store.CollectionWealth:
		sess.wealth, err = decodeWealth(data)
	case store.CollectionCycles:
		sess.cycles, err = decodeCycles(data)
	case store.CollectionReviews:
		sess.reviews, err = decodeReviews(data)
	case store.CollectionHabits:
		sess.habits, err = decodeHabits(data)
	default:
		return fmt.Errorf("unknown collection %q", collection)
	}
	return err
}

// document returns the collection's persisted form. The list-shaped
// collections go out in the {list: [...]} envelope their readers expect.
func (sess *session) document(collection string) (any, error) {
	switch collection {
	case store.CollectionTasks:
		return listDocument[core.TaskList]{List: sess.tasks}, nil
	case store.CollectionCategories:
		return listDocument[core.CategoryList]{List: sess.categories}, nil
	case store.CollectionWealth:
		return sess.wealth, nil
	case store.CollectionCycles:
		return sess.cycles, nil
	case store.CollectionReviews:
		return sess.reviews, nil
	case store.CollectionHabits:
		return listDocument[core.HabitList]{List: sess.habits}, nil
	}
	return nil, fmt.Errorf("unknown collection %q", collection)
}

// persist queues the collection's current state for saving. Failures are
// logged, never surfaced: memory stays authoritative.
func (s *Service) persist(ctx context.Context, sess *session, collection string) {
	doc, err := sess.document(collection)
	if err != nil {
		s.logger.ErrorContext(ctx, "Persist skipped", "collection", collection, "error", err)
		return
	}
	data, err := json.Marshal(doc)
	if err != nil {
		s.logger.ErrorContext(ctx, "Encode document failed",
			"user", sess.user, "collection", collection, "error", err)
		return
	}
	s.queue.Enqueue(s.key(sess.user, collection), data)
}

// ApplySnapshot overwrites a session collection with a delivered remote
// document. Last writer wins; there is no merging.
func (s *Service) ApplySnapshot(user, collection string, data []byte) error {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.apply(collection, data); err != nil {
		return err
	}
	sess.loaded[collection] = true
	return nil
}

// HandleChange reloads a changed document into its session, if one exists.
// Keys from another scope and users without an active session are ignored.
func (s *Service) HandleChange(ctx context.Context, key string) error {
	scope, user, collection, err := store.SplitKey(key)
	if err != nil {
		return err
	}
	if scope != s.scope {
		return nil
	}

	s.mu.Lock()
	sess, ok := s.sessions[user]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	sess.mu.Lock()
	active := sess.loaded[collection]
	sess.mu.Unlock()
	if !active {
		return nil
	}

	data, found, err := s.store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("reload %s: %w", key, err)
	}
	if !found {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.apply(collection, data); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Remote change applied", "key", key)
	return nil
}

// --- tasks ---

func (s *Service) Tasks(ctx context.Context, user string) (core.TaskList, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionTasks); err != nil {
		return nil, err
	}
	return append(core.TaskList{}, sess.tasks...), nil
}

func (s *Service) TasksOn(ctx context.Context, user, dateKey string) ([]core.Task, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionTasks); err != nil {
		return nil, err
	}
	return sess.tasks.TasksOn(dateKey), nil
}

// AddTask stores the task and registers an unknown category on first use.
func (s *Service) AddTask(ctx context.Context, user string, t core.Task) (core.Task, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionTasks); err != nil {
		return core.Task{}, err
	}
	added, err := sess.tasks.Add(t)
	if err != nil {
		return core.Task{}, err
	}
	s.persist(ctx, sess, store.CollectionTasks)

	if added.Category != "" {
		if err := s.ensure(ctx, sess, store.CollectionCategories); err != nil {
			s.logger.WarnContext(ctx, "Category registry unavailable", "error", err)
			return added, nil
		}
		if !sess.categories.Has(added.Category) {
			if _, err := sess.categories.Add(added.Category, ""); err == nil {
				s.persist(ctx, sess, store.CollectionCategories)
			}
		}
	}
	return added, nil
}

func (s *Service) ToggleTask(ctx context.Context, user, id string) (core.Task, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionTasks); err != nil {
		return core.Task{}, err
	}
	t, err := sess.tasks.Toggle(id)
	if err != nil {
		return core.Task{}, err
	}
	s.persist(ctx, sess, store.CollectionTasks)
	return t, nil
}

func (s *Service) RemoveTask(ctx context.Context, user, id string) error {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionTasks); err != nil {
		return err
	}
	if err := sess.tasks.Remove(id); err != nil {
		return err
	}
	s.persist(ctx, sess, store.CollectionTasks)
	return nil
}

func (s *Service) UpdateTask(ctx context.Context, user, id string, u core.TaskUpdate) (core.Task, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionTasks); err != nil {
		return core.Task{}, err
	}
	t, err := sess.tasks.Update(id, u)
	if err != nil {
		return core.Task{}, err
	}
	s.persist(ctx, sess, store.CollectionTasks)
	return t, nil
}

func (s *Service) ReorderTasks(ctx context.Context, user, dragID, targetID string, pos core.Position) error {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionTasks); err != nil {
		return err
	}
	if err := sess.tasks.Reorder(dragID, targetID, pos); err != nil {
		return err
	}
	s.persist(ctx, sess, store.CollectionTasks)
	return nil
}

func (s *Service) CloneDay(ctx context.Context, user, src, dst string) (int, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionTasks); err != nil {
		return 0, err
	}
	n := sess.tasks.CloneDay(src, dst)
	if n > 0 {
		s.persist(ctx, sess, store.CollectionTasks)
	}
	return n, nil
}

// --- categories ---

func (s *Service) Categories(ctx context.Context, user string) (core.CategoryList, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionCategories); err != nil {
		return nil, err
	}
	return append(core.CategoryList{}, sess.categories...), nil
}

func (s *Service) AddCategory(ctx context.Context, user, name, color string) (core.Category, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionCategories); err != nil {
		return core.Category{}, err
	}
	c, err := sess.categories.Add(name, color)
	if err != nil {
		return core.Category{}, err
	}
	s.persist(ctx, sess, store.CollectionCategories)
	return c, nil
}

// RemoveCategory drops a category from the registry. Tasks referencing it
// keep their label and fall back to default styling.
func (s *Service) RemoveCategory(ctx context.Context, user, name string) error {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionCategories); err != nil {
		return err
	}
	if err := sess.categories.Remove(name); err != nil {
		return err
	}
	s.persist(ctx, sess, store.CollectionCategories)
	return nil
}

// --- aggregation ---

func (s *Service) CategoryStats(ctx context.Context, user string) (map[string]core.CategoryStat, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionTasks); err != nil {
		return nil, err
	}
	return core.CategoryStats(sess.tasks), nil
}

func (s *Service) SpendingTotals(ctx context.Context, user string) ([]core.CategoryTotal, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionWealth); err != nil {
		return nil, err
	}
	return core.CategoryTotals(sess.wealth.Transactions), nil
}

// --- wealth ---

func (s *Service) Wealth(ctx context.Context, user string) (core.Wealth, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionWealth); err != nil {
		return core.Wealth{}, err
	}
	return copyWealth(sess.wealth), nil
}

func (s *Service) DistributeIncome(ctx context.Context, user string, income float64) (core.Distribution, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionWealth); err != nil {
		return core.Distribution{}, err
	}
	d := sess.wealth.Distribute(income, core.TodayKey(time.Now()))
	if len(d.Transactions) > 0 {
		s.persist(ctx, sess, store.CollectionWealth)
	}
	return d, nil
}

func (s *Service) AddJar(ctx context.Context, user, label string, percent float64) (core.Jar, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionWealth); err != nil {
		return core.Jar{}, err
	}
	jar, err := sess.wealth.AddJar(label, percent)
	if err != nil {
		return core.Jar{}, err
	}
	s.persist(ctx, sess, store.CollectionWealth)
	return jar, nil
}

func (s *Service) DeleteJar(ctx context.Context, user, id, transferTo string) error {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionWealth); err != nil {
		return err
	}
	if err := sess.wealth.DeleteJar(id, transferTo); err != nil {
		return err
	}
	s.persist(ctx, sess, store.CollectionWealth)
	return nil
}

func (s *Service) AddTransaction(ctx context.Context, user string, tx core.Transaction) (core.Transaction, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionWealth); err != nil {
		return core.Transaction{}, err
	}
	added := sess.wealth.AddTransaction(tx)
	s.persist(ctx, sess, store.CollectionWealth)
	return added, nil
}

func (s *Service) RemoveTransaction(ctx context.Context, user, id string) error {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionWealth); err != nil {
		return err
	}
	if err := sess.wealth.RemoveTransaction(id); err != nil {
		return err
	}
	s.persist(ctx, sess, store.CollectionWealth)
	return nil
}

// --- cycles ---

func (s *Service) Cycles(ctx context.Context, user string) (core.CycleSet, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionCycles); err != nil {
		return core.CycleSet{}, err
	}
	return copyCycles(sess.cycles), nil
}

// RegenerateCycles rebuilds the tracker from a new start date, discarding
// all sub-tasks.
func (s *Service) RegenerateCycles(ctx context.Context, user, startKey string) (core.CycleSet, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionCycles); err != nil {
		return core.CycleSet{}, err
	}
	sess.cycles = core.GenerateCycles(startKey)
	s.persist(ctx, sess, store.CollectionCycles)
	return copyCycles(sess.cycles), nil
}

func (s *Service) AddCycleTask(ctx context.Context, user string, cycleID int) (core.CycleTask, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionCycles); err != nil {
		return core.CycleTask{}, err
	}
	t, err := sess.cycles.AddTask(cycleID)
	if err != nil {
		return core.CycleTask{}, err
	}
	s.persist(ctx, sess, store.CollectionCycles)
	return t, nil
}

func (s *Service) UpdateCycleTask(ctx context.Context, user string, cycleID int, taskID string, u core.CycleTaskUpdate) (core.CycleTask, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionCycles); err != nil {
		return core.CycleTask{}, err
	}
	t, err := sess.cycles.UpdateTask(cycleID, taskID, u)
	if err != nil {
		return core.CycleTask{}, err
	}
	s.persist(ctx, sess, store.CollectionCycles)
	return t, nil
}

func (s *Service) DeleteCycleTask(ctx context.Context, user string, cycleID int, taskID string) error {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionCycles); err != nil {
		return err
	}
	if err := sess.cycles.DeleteTask(cycleID, taskID); err != nil {
		return err
	}
	s.persist(ctx, sess, store.CollectionCycles)
	return nil
}

// --- reviews ---

func (s *Service) DailyReview(ctx context.Context, user, dateKey string) (core.DailyReview, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionReviews); err != nil {
		return core.DailyReview{}, err
	}
	return sess.reviews.Daily[dateKey], nil
}

func (s *Service) SetDailyReview(ctx context.Context, user, dateKey string, r core.DailyReview) error {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionReviews); err != nil {
		return err
	}
	sess.reviews.Daily[dateKey] = r
	s.persist(ctx, sess, store.CollectionReviews)
	return nil
}

func (s *Service) CycleReview(ctx context.Context, user string, id int) (core.CycleReview, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionReviews); err != nil {
		return core.CycleReview{}, err
	}
	return sess.reviews.Cycle[id], nil
}

func (s *Service) SetCycleReview(ctx context.Context, user string, id int, r core.CycleReview) error {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionReviews); err != nil {
		return err
	}
	sess.reviews.Cycle[id] = r
	s.persist(ctx, sess, store.CollectionReviews)
	return nil
}

// YearlyReview returns the year's review, seeding the fixed goal categories
// in memory on first read.
func (s *Service) YearlyReview(ctx context.Context, user string, year int) (core.YearlyReview, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionReviews); err != nil {
		return core.YearlyReview{}, err
	}
	y, ok := sess.reviews.Yearly[year]
	if !ok {
		y = core.NewYearlyReview()
		sess.reviews.Yearly[year] = y
	}
	return y, nil
}

func (s *Service) SetYearlyReview(ctx context.Context, user string, year int, r core.YearlyReview) error {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionReviews); err != nil {
		return err
	}
	sess.reviews.Yearly[year] = r
	s.persist(ctx, sess, store.CollectionReviews)
	return nil
}

// --- habits ---

func (s *Service) Habits(ctx context.Context, user string) (core.HabitList, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionHabits); err != nil {
		return nil, err
	}
	return append(core.HabitList{}, sess.habits...), nil
}

func (s *Service) AddHabit(ctx context.Context, user, name string, target int, reward string) (core.Habit, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionHabits); err != nil {
		return core.Habit{}, err
	}
	h, err := sess.habits.Add(name, target, reward)
	if err != nil {
		return core.Habit{}, err
	}
	s.persist(ctx, sess, store.CollectionHabits)
	return h, nil
}

func (s *Service) RemoveHabit(ctx context.Context, user, id string) error {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionHabits); err != nil {
		return err
	}
	if err := sess.habits.Remove(id); err != nil {
		return err
	}
	s.persist(ctx, sess, store.CollectionHabits)
	return nil
}

func (s *Service) ToggleHabit(ctx context.Context, user, id, dateKey string) (core.Habit, error) {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.ensure(ctx, sess, store.CollectionHabits); err != nil {
		return core.Habit{}, err
	}
	h, err := sess.habits.Toggle(id, dateKey)
	if err != nil {
		return core.Habit{}, err
	}
	s.persist(ctx, sess, store.CollectionHabits)
	return h, nil
}

// --- copies ---

func copyWealth(w core.Wealth) core.Wealth {
	cp := w
	cp.Balances = make(map[string]float64, len(w.Balances))
	for id, balance := range w.Balances {
		cp.Balances[id] = balance
	}
	cp.Transactions = append([]core.Transaction{}, w.Transactions...)
	cp.Config.Jars = append([]core.Jar{}, w.Config.Jars...)
	return cp
}

func copyCycles(set core.CycleSet) core.CycleSet {
	cp := set
	cp.Cycles = make([]core.Cycle, len(set.Cycles))
	for i, c := range set.Cycles {
		cp.Cycles[i] = c
		cp.Cycles[i].Tasks = append([]core.CycleTask{}, c.Tasks...)
	}
	return cp
}
