// Package mongo provides a MongoDB Store for Boxoffice.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/id"
	optionpkg "github.com/xraph/boxoffice/option"
	"github.com/xraph/boxoffice/section"
	storepkg "github.com/xraph/boxoffice/store"
	"github.com/xraph/boxoffice/tickettype"
	"github.com/xraph/boxoffice/venue"
)

// Collection name constants.
const (
	colVenues       = "boxoffice_venues"
	colPerformances = "boxoffice_performances"
	colTicketTypes  = "boxoffice_ticket_types"
	colSections     = "boxoffice_sections"
	colAllocations  = "boxoffice_section_ticket_types"
	colOptions      = "boxoffice_options"
)

// compile-time interface check
var _ storepkg.Store = (*Store)(nil)

// Store implements store.Store using MongoDB. Paired capacity writes
// use a multi-document transaction, so the deployment must be a
// replica set.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and selects the given database.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("boxoffice/mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("boxoffice/mongo: ping: %w", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *mongo.Client, database string) *Store {
	return &Store{client: client, db: client.Database(database)}
}

// VenueStore returns the venue persistence contract.
func (s *Store) VenueStore() venue.Store { return s }

// TicketTypeStore returns the ticket-type persistence contract.
func (s *Store) TicketTypeStore() tickettype.Store { return ticketTypeStore{s} }

// SectionStore returns the section persistence contract.
func (s *Store) SectionStore() section.Store { return sectionStore{s} }

// OptionStore returns the option persistence contract.
func (s *Store) OptionStore() optionpkg.Store { return optionStore{s} }

// Migrate creates indexes for all collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		colPerformances: {
			{Keys: bson.D{{Key: "venue_id", Value: 1}}},
		},
		colTicketTypes: {
			{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colSections: {
			{Keys: bson.D{{Key: "performance_id", Value: 1}, {Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colAllocations: {
			{Keys: bson.D{{Key: "section_id", Value: 1}, {Key: "ticket_type_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colOptions: {
			{Keys: bson.D{{Key: "performance_id", Value: 1}}},
		},
	}

	for col, models := range indexes {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("boxoffice/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects from MongoDB.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// Venue store implementation

func (s *Store) CreateVenue(ctx context.Context, v *venue.Venue) error {
	_, err := s.db.Collection(colVenues).InsertOne(ctx, toVenueDoc(v))
	if isDuplicateKey(err) {
		return boxoffice.ErrAlreadyExists
	}
	return err
}

func (s *Store) GetVenue(ctx context.Context, venueID id.VenueID) (*venue.Venue, error) {
	var doc venueDoc
	err := s.db.Collection(colVenues).FindOne(ctx, bson.M{"_id": venueID.String()}).Decode(&doc)
	if isNoDocuments(err) {
		return nil, boxoffice.ErrVenueNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromVenueDoc(&doc)
}

func (s *Store) ListVenues(ctx context.Context, tenantID string, opts venue.ListOpts) ([]*venue.Venue, error) {
	filter := bson.M{}
	if tenantID != "" {
		filter["tenant_id"] = tenantID
	}
	if opts.ActiveOnly {
		filter["active"] = true
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts.SetSkip(int64(opts.Offset))
	}

	cur, err := s.db.Collection(colVenues).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []*venue.Venue
	for cur.Next(ctx) {
		var doc venueDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		v, err := fromVenueDoc(&doc)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, cur.Err()
}

func (s *Store) CreatePerformance(ctx context.Context, p *venue.Performance) error {
	_, err := s.db.Collection(colPerformances).InsertOne(ctx, toPerformanceDoc(p))
	if isDuplicateKey(err) {
		return boxoffice.ErrAlreadyExists
	}
	return err
}

func (s *Store) GetPerformance(ctx context.Context, perfID id.PerformanceID) (*venue.Performance, error) {
	var doc performanceDoc
	err := s.db.Collection(colPerformances).FindOne(ctx, bson.M{"_id": perfID.String()}).Decode(&doc)
	if isNoDocuments(err) {
		return nil, boxoffice.ErrPerformanceNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromPerformanceDoc(&doc)
}

func (s *Store) ListPerformances(ctx context.Context, venueID id.VenueID, opts venue.ListOpts) ([]*venue.Performance, error) {
	filter := bson.M{"venue_id": venueID.String()}
	if opts.ActiveOnly {
		filter["active"] = true
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts.SetSkip(int64(opts.Offset))
	}

	cur, err := s.db.Collection(colPerformances).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []*venue.Performance
	for cur.Next(ctx) {
		var doc performanceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		p, err := fromPerformanceDoc(&doc)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, cur.Err()
}
