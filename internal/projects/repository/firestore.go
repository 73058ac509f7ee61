package repository

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/folio-works/portfolio-backend/internal/projects/domain"
)

// projectDoc is the Firestore document layout of a project.
type projectDoc struct {
	Title     string `firestore:"title"`
	Summary   string `firestore:"summary"`
	URL       string `firestore:"url"`
	ImageURL  string `firestore:"imageUrl"`
	CreatedAt string `firestore:"createdAt"`
	Featured  bool   `firestore:"featured"`
}

func toDoc(p domain.Project) projectDoc {
	return projectDoc{
		Title:     p.Title,
		Summary:   p.Summary,
		URL:       p.URL,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		Featured:  p.Featured,
	}
}

func fromSnapshot(snap *firestore.DocumentSnapshot) (domain.Project, error) {
	var d projectDoc
	if err := snap.DataTo(&d); err != nil {
		return domain.Project{}, err
	}
	return domain.Project{
		ID:        snap.Ref.ID,
		Title:     d.Title,
		Summary:   d.Summary,
		URL:       d.URL,
		ImageURL:  d.ImageURL,
		CreatedAt: d.CreatedAt,
		Featured:  d.Featured,
	}, nil
}

// FirestoreStore persists projects in a single Firestore collection.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreStore(client *firestore.Client, collection string) *FirestoreStore {
	if collection == "" {
		collection = "projects"
	}
	return &FirestoreStore{client: client, collection: collection}
}

func (s *FirestoreStore) coll() *firestore.CollectionRef {
	return s.client.Collection(s.collection)
}

func (s *FirestoreStore) featuredQuery() firestore.Query {
	return s.coll().Where("featured", "==", true)
}

func (s *FirestoreStore) List(ctx context.Context) ([]domain.Project, error) {
	snaps, err := s.coll().OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return decodeAll(snaps)
}

// ListFeatured filters only; combined filter and order would need a composite index.
func (s *FirestoreStore) ListFeatured(ctx context.Context) ([]domain.Project, error) {
	snaps, err := s.featuredQuery().Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return decodeAll(snaps)
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	snap, err := s.coll().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !snap.Exists() {
		return nil, domain.ErrNotFound
	}
	p, err := fromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll().Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		return fn(ctx, &firestoreTx{store: s, tx: t})
	})
}

// Ping reads at most one document to prove the collection is reachable.
func (s *FirestoreStore) Ping(ctx context.Context) error {
	it := s.coll().Limit(1).Documents(ctx)
	defer it.Stop()
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

type firestoreTx struct {
	store *FirestoreStore
	tx    *firestore.Transaction
}

func (t *firestoreTx) Get(id string) (*domain.Project, error) {
	snap, err := t.tx.Get(t.store.coll().Doc(id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !snap.Exists() {
		return nil, domain.ErrNotFound
	}
	p, err := fromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (t *firestoreTx) CountFeatured() (int, error) {
	snaps, err := t.tx.Documents(t.store.featuredQuery()).GetAll()
	if err != nil {
		return 0, err
	}
	return len(snaps), nil
}

func (t *firestoreTx) Create(p domain.Project) (string, error) {
	ref := t.store.coll().NewDoc()
	if err := t.tx.Create(ref, toDoc(p)); err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (t *firestoreTx) Update(id string, p domain.Project) error {
	err := t.tx.Update(t.store.coll().Doc(id), []firestore.Update{
		{Path: "title", Value: p.Title},
		{Path: "summary", Value: p.Summary},
		{Path: "url", Value: p.URL},
		{Path: "imageUrl", Value: p.ImageURL},
		{Path: "featured", Value: p.Featured},
	})
	return mapNotFound(err)
}

func (t *firestoreTx) SetFeatured(id string, featured bool) error {
	err := t.tx.Update(t.store.coll().Doc(id), []firestore.Update{
		{Path: "featured", Value: featured},
	})
	return mapNotFound(err)
}

func decodeAll(snaps []*firestore.DocumentSnapshot) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(snaps))
	for _, snap := range snaps {
		p, err := fromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func mapNotFound(err error) error {
	if err != nil && status.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	return err
}
