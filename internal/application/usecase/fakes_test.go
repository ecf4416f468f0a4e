package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"sync"
	"time"

	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/repository"
)

// Repositorios en memoria para probar los casos de uso sin base de datos.

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hash:" + p, nil }
func (plainHasher) Check(p, hash string) bool     { return hash == "hash:"+p }

// ---- usuarios ----

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*entity.User
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{rows: map[int64]*entity.User{}}
	for _, u := range users {
		m.nextID++
		if u.ID == 0 {
			u.ID = m.nextID
		}
		m.rows[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.rows {
		if x.Correo == u.Correo {
			return domain.ErrEmailAlreadyExists
		}
	}
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.rows[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Correo == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Correo == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) List(_ context.Context) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0, len(m.rows))
	for _, u := range m.rows {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) Update(_ context.Context, id int64, p entity.UserPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if p.Nombre != nil {
		u.Nombre = *p.Nombre
	}
	if p.Correo != nil {
		u.Correo = *p.Correo
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Rol != nil {
		u.Rol = *p.Rol
	}
	return nil
}

func (m *memUsers) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.rows, id)
	return nil
}

// ---- locales ----

type memLocations struct {
	nextID int64
	rows   map[int64]*entity.Location
}

func newMemLocations(locs ...*entity.Location) *memLocations {
	m := &memLocations{rows: map[int64]*entity.Location{}}
	for _, l := range locs {
		m.nextID++
		if l.ID == 0 {
			l.ID = m.nextID
		}
		m.rows[l.ID] = l
	}
	return m
}

func (m *memLocations) Create(_ context.Context, l *entity.Location) error {
	m.nextID++
	l.ID = m.nextID
	cp := *l
	m.rows[l.ID] = &cp
	return nil
}

func (m *memLocations) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	if l, ok := m.rows[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (m *memLocations) sorted(less func(a, b *entity.Location) bool) []*entity.Location {
	out := make([]*entity.Location, 0, len(m.rows))
	for _, l := range m.rows {
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (m *memLocations) List(_ context.Context) ([]*entity.Location, error) {
	return m.sorted(func(a, b *entity.Location) bool { return a.CreadoEn.After(b.CreadoEn) }), nil
}

func (m *memLocations) ListByName(_ context.Context) ([]*entity.Location, error) {
	return m.sorted(func(a, b *entity.Location) bool { return a.NombreEmpresa < b.NombreEmpresa }), nil
}

func (m *memLocations) Update(_ context.Context, l *entity.Location) error {
	cur, ok := m.rows[l.ID]
	if !ok {
		return domain.ErrLocationNotFound
	}
	cp := *l
	cp.CreadoEn = cur.CreadoEn
	m.rows[l.ID] = &cp
	return nil
}

func (m *memLocations) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return domain.ErrLocationNotFound
	}
	delete(m.rows, id)
	return nil
}

// ---- reponedores ----

type memReponedors struct {
	nextID int64
	rows   map[int64]*entity.Reponedor
	users  *memUsers
}

func newMemReponedors(users *memUsers, reps ...*entity.Reponedor) *memReponedors {
	m := &memReponedors{rows: map[int64]*entity.Reponedor{}, users: users}
	for _, r := range reps {
		m.nextID++
		if r.ID == 0 {
			r.ID = m.nextID
		}
		m.rows[r.ID] = r
	}
	return m
}

func (m *memReponedors) Create(_ context.Context, r *entity.Reponedor) error {
	m.nextID++
	r.ID = m.nextID
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memReponedors) GetByID(_ context.Context, id int64) (*entity.Reponedor, error) {
	if r, ok := m.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (m *memReponedors) FindProfileByUserID(ctx context.Context, userID int64) (*entity.ReponedorProfile, error) {
	var latest *entity.Reponedor
	for _, r := range m.rows {
		if r.UsuarioID == userID && (latest == nil || r.ID > latest.ID) {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	u, _ := m.users.GetByID(ctx, userID)
	if u == nil {
		return nil, nil
	}
	return &entity.ReponedorProfile{Reponedor: *latest, Nombre: u.Nombre, Correo: u.Correo, Rol: u.Rol}, nil
}

func (m *memReponedors) ListSummaries(ctx context.Context) ([]entity.ReponedorSummary, error) {
	out := []entity.ReponedorSummary{}
	for _, r := range m.rows {
		u, _ := m.users.GetByID(ctx, r.UsuarioID)
		nombre := ""
		if u != nil {
			nombre = u.Nombre
		}
		out = append(out, entity.ReponedorSummary{ID: r.ID, Nombre: nombre, Empresa: r.Empresa, EmpresaServicio: r.EmpresaServicio})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

// ---- visitas ----

type memVisits struct {
	nextID    int64
	nextDayID int64
	visits    map[int64]*entity.ScheduledVisit
	days      []entity.VisitDay
	// failInsertDays simula un error de base de datos al insertar días.
	failInsertDays bool
}

func newMemVisits() *memVisits {
	return &memVisits{visits: map[int64]*entity.ScheduledVisit{}}
}

func (m *memVisits) snapshot() *memVisits {
	cp := &memVisits{nextID: m.nextID, nextDayID: m.nextDayID, visits: map[int64]*entity.ScheduledVisit{}}
	for id, v := range m.visits {
		vv := *v
		cp.visits[id] = &vv
	}
	cp.days = append([]entity.VisitDay(nil), m.days...)
	return cp
}

func (m *memVisits) restore(s *memVisits) {
	m.nextID, m.nextDayID, m.visits, m.days = s.nextID, s.nextDayID, s.visits, s.days
}

func (m *memVisits) Create(_ context.Context, v *entity.ScheduledVisit) error {
	for _, x := range m.visits {
		if x.ReponedorID == v.ReponedorID && x.Fecha.Equal(v.Fecha) && x.Hora == v.Hora {
			return domain.ErrConflict
		}
	}
	m.nextID++
	v.ID = m.nextID
	cp := *v
	m.visits[v.ID] = &cp
	return nil
}

func (m *memVisits) GetByID(_ context.Context, id int64) (*entity.ScheduledVisit, error) {
	if v, ok := m.visits[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (m *memVisits) SlotTaken(_ context.Context, usuarioID int64, fecha time.Time, hora string, excludeID int64) (bool, error) {
	for _, x := range m.visits {
		if x.ID != excludeID && x.ReponedorID == usuarioID && x.Fecha.Equal(fecha) && x.Hora == hora {
			return true, nil
		}
	}
	return false, nil
}

func (m *memVisits) UpdateAssignment(_ context.Context, v *entity.ScheduledVisit) error {
	cur, ok := m.visits[v.ID]
	if !ok {
		return domain.ErrVisitNotFound
	}
	cur.LocalID, cur.ReponedorID, cur.Fecha, cur.Hora = v.LocalID, v.ReponedorID, v.Fecha, v.Hora
	return nil
}

func (m *memVisits) Delete(_ context.Context, id int64) error {
	if _, ok := m.visits[id]; !ok {
		return domain.ErrVisitNotFound
	}
	delete(m.visits, id)
	return nil
}

func (m *memVisits) InsertDays(_ context.Context, days []entity.VisitDay) error {
	if m.failInsertDays {
		return errors.New("insert visitas_semana: conexión perdida")
	}
	for _, d := range days {
		m.nextDayID++
		d.ID = m.nextDayID
		m.days = append(m.days, d)
	}
	return nil
}

func (m *memVisits) DeleteDays(_ context.Context, visitaID int64) error {
	kept := m.days[:0]
	for _, d := range m.days {
		if d.VisitaID != visitaID {
			kept = append(kept, d)
		}
	}
	m.days = kept
	return nil
}

// daysOf días guardados de una visita, por fecha.
func (m *memVisits) daysOf(visitaID int64) []entity.VisitDay {
	out := []entity.VisitDay{}
	for _, d := range m.days {
		if d.VisitaID == visitaID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dia.Before(out[j].Dia) })
	return out
}

func (m *memVisits) ListDaysForLocation(_ context.Context, localID int64, dates []time.Time) ([]entity.VisitDay, error) {
	out := []entity.VisitDay{}
	for _, d := range m.days {
		v, ok := m.visits[d.VisitaID]
		if !ok || v.LocalID != localID {
			continue
		}
		for _, dt := range dates {
			if d.Dia.Equal(dt) {
				out = append(out, d)
				break
			}
		}
	}
	return out, nil
}

func (m *memVisits) SetDayState(_ context.Context, visitaID int64, estado string, dia *time.Time) (int64, error) {
	var n int64
	for i := range m.days {
		d := &m.days[i]
		if d.VisitaID != visitaID || (dia != nil && !d.Dia.Equal(*dia)) {
			continue
		}
		d.Estado = estado
		n++
	}
	return n, nil
}

func (m *memVisits) Start(_ context.Context, in entity.VisitStart) error {
	v, ok := m.visits[in.VisitaID]
	if !ok || v.ReponedorID != in.UsuarioID {
		return domain.ErrVisitNotFound
	}
	geo := in.Geolocalizacion.String()
	inicio := in.Inicio
	foto := in.FotoInicio
	punto := entity.NewGeoPoint(in.Geolocalizacion.Lat(), in.Geolocalizacion.Lng())
	v.Estado, v.FotoInicio, v.Geolocalizacion, v.InicioReal = entity.VisitEnProgreso, &foto, &geo, &inicio
	v.Ubicacion = &punto
	return nil
}

func (m *memVisits) Finish(_ context.Context, in entity.VisitFinish) error {
	v, ok := m.visits[in.VisitaID]
	if !ok || v.ReponedorID != in.UsuarioID {
		return domain.ErrVisitNotFound
	}
	joined := ""
	for i, f := range in.FotosProductos {
		if i > 0 {
			joined += ","
		}
		joined += f
	}
	fin := in.Fin
	fotoFin := in.FotoFin
	v.Estado, v.FotosProductos, v.FotoFin, v.Observaciones, v.FinReal = entity.VisitFinalizada, &joined, &fotoFin, in.Observaciones, &fin
	return nil
}

func (m *memVisits) ListForReponedor(_ context.Context, usuarioID int64) ([]entity.ReponedorVisitView, error) {
	out := []entity.ReponedorVisitView{}
	for _, v := range m.visits {
		if v.ReponedorID != usuarioID {
			continue
		}
		out = append(out, entity.ReponedorVisitView{
			ID: v.ID, Fecha: v.Fecha, Hora: v.Hora, Estado: v.Estado,
			FotoInicio: v.FotoInicio, FotoFin: v.FotoFin, FotosProductos: v.FotosProductos,
			Geolocalizacion: v.Geolocalizacion, Ubicacion: v.Ubicacion, InicioReal: v.InicioReal, FinReal: v.FinReal,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Fecha.Equal(out[j].Fecha) {
			return out[i].Fecha.Before(out[j].Fecha)
		}
		return out[i].Hora < out[j].Hora
	})
	return out, nil
}

func (m *memVisits) ListAll(_ context.Context) ([]entity.VisitView, error) {
	out := []entity.VisitView{}
	for _, v := range m.visits {
		out = append(out, entity.VisitView{
			ID: v.ID, LocalID: v.LocalID, ReponedorID: v.ReponedorID,
			Fecha: v.Fecha, Hora: v.Hora, Estado: v.Estado,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// memTx ejecuta fn sobre el mismo memVisits y restaura el estado si fn falla.
type memTx struct {
	visits *memVisits
	calls  int
}

func (t *memTx) RunVisits(_ context.Context, fn func(repository.VisitRepository) error) error {
	t.calls++
	snap := t.visits.snapshot()
	if err := fn(t.visits); err != nil {
		t.visits.restore(snap)
		return err
	}
	return nil
}

// ---- tareas y contactos ----

type memTasks struct {
	nextID int64
	rows   map[int64]*entity.Task
}

func newMemTasks() *memTasks { return &memTasks{rows: map[int64]*entity.Task{}} }

func (m *memTasks) Create(_ context.Context, t *entity.Task) error {
	m.nextID++
	t.ID = m.nextID
	cp := *t
	m.rows[t.ID] = &cp
	return nil
}

func (m *memTasks) List(_ context.Context) ([]entity.TaskView, error) {
	out := []entity.TaskView{}
	for _, t := range m.rows {
		out = append(out, entity.TaskView{ID: t.ID, Descripcion: t.Descripcion, Fecha: t.FechaVisita, Estado: t.Estado, ReponedorID: t.ReponedorID})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}

func (m *memTasks) Resolve(_ context.Context, id int64) error {
	t, ok := m.rows[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.Estado = entity.TaskResuelta
	return nil
}

func (m *memTasks) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(m.rows, id)
	return nil
}

type memContacts struct {
	rows []*entity.Contact
}

func (m *memContacts) Create(_ context.Context, c *entity.Contact) error {
	c.ID = int64(len(m.rows) + 1)
	cp := *c
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memContacts) List(_ context.Context) ([]*entity.Contact, error) {
	out := make([]*entity.Contact, 0, len(m.rows))
	for i := len(m.rows) - 1; i >= 0; i-- {
		out = append(out, m.rows[i])
	}
	return out, nil
}

// ---- puertos de infraestructura ----

type fakeFiles struct {
	saved   []string
	removed []string
	failOn  int // falla en el archivo n (1-based); 0 = nunca
	counter int
}

func (f *fakeFiles) Save(_ context.Context, subdir string, userID int64, files []*multipart.FileHeader) ([]string, error) {
	if f.failOn > 0 && len(files) >= f.failOn {
		return nil, domain.NewFieldError("archivo", "tipo de archivo no permitido")
	}
	names := make([]string, 0, len(files))
	for range files {
		f.counter++
		names = append(names, fmt.Sprintf("foto_%d_%d.jpg", userID, f.counter))
	}
	f.saved = append(f.saved, names...)
	return names, nil
}

func (f *fakeFiles) Remove(_ string, names ...string) {
	f.removed = append(f.removed, names...)
}

func (f *fakeFiles) PublicPath(subdir, name string) string {
	return "/uploads/" + subdir + "/" + name
}

type fakeQR struct{ last string }

func (q *fakeQR) PNG(content string) ([]byte, error) {
	q.last = content
	return []byte("png"), nil
}

type fakeNotifier struct {
	sent []*entity.Contact
	err  error
}

func (n *fakeNotifier) NotifyContact(_ context.Context, c *entity.Contact) error {
	n.sent = append(n.sent, c)
	return n.err
}

type blockingNotifier struct {
	release chan struct{}
	got     chan context.Context
}

func (n *blockingNotifier) NotifyContact(ctx context.Context, _ *entity.Contact) error {
	n.got <- ctx
	<-n.release
	return nil
}

type fakeExporter struct{ rows int }

func (e *fakeExporter) ExportVisits(_ context.Context, visits []entity.VisitView) ([]byte, error) {
	e.rows = len(visits)
	return []byte("xlsx"), nil
}

func fileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 10}
}
