package source

import (
	"context"
	"fmt"

	"curriculum/internal/models"
	"curriculum/internal/qerrors"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreSource reads courses from the courses collection, and their modules and content from
// the modules and content collections, matched on course_id.
type FirestoreSource struct {
	client *firestore.Client
}

func NewFirestoreSource(client *firestore.Client) *FirestoreSource {
	return &FirestoreSource{client: client}
}

func (s *FirestoreSource) Load(ctx context.Context, courseID string) (*Snapshot, error) {
	doc, err := s.client.Collection(models.FirestoreCoursesCollection).Doc(courseID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: %s", qerrors.CourseNotFoundError, courseID)
	}
	if err != nil {
		return nil, fmt.Errorf("error getting course %s: %w", courseID, err)
	}

	snap := &Snapshot{}
	if err := decodeDocument(doc.Data(), &snap.Course); err != nil {
		return nil, fmt.Errorf("error decoding course %s: %w", courseID, err)
	}
	snap.Course.ID = doc.Ref.ID

	// Modules and content are independent queries; fetch them together.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.queryCourseDocs(gctx, models.FirestoreModulesCollection, courseID, func(doc *firestore.DocumentSnapshot) error {
			var m models.Module
			if err := decodeDocument(doc.Data(), &m); err != nil {
				return fmt.Errorf("error decoding module %s: %w", doc.Ref.ID, err)
			}
			m.ID = doc.Ref.ID
			snap.Modules = append(snap.Modules, m)
			return nil
		})
	})
	g.Go(func() error {
		return s.queryCourseDocs(gctx, models.FirestoreContentCollection, courseID, func(doc *firestore.DocumentSnapshot) error {
			var c models.Content
			if err := decodeDocument(doc.Data(), &c); err != nil {
				return fmt.Errorf("error decoding content %s: %w", doc.Ref.ID, err)
			}
			c.ID = doc.Ref.ID
			snap.Content = append(snap.Content, c)
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snap, nil
}

func (s *FirestoreSource) queryCourseDocs(ctx context.Context, collection, courseID string, handleDoc func(doc *firestore.DocumentSnapshot) error) error {
	iter := s.client.Collection(collection).Where("course_id", "==", courseID).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error listing %s: %w", collection, err)
		}
		if err := handleDoc(doc); err != nil {
			return err
		}
	}
}
