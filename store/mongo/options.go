package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/id"
	optionpkg "github.com/xraph/boxoffice/option"
	"github.com/xraph/boxoffice/tickettype"
)

// ticketTypeStore adapts Store to the ticket-type persistence contract.
type ticketTypeStore struct{ *Store }

func (s ticketTypeStore) Create(ctx context.Context, t *tickettype.TicketType) error {
	_, err := s.db.Collection(colTicketTypes).InsertOne(ctx, toTicketTypeDoc(t))
	if isDuplicateKey(err) {
		return boxoffice.ErrTicketTypeExists
	}
	return err
}

func (s ticketTypeStore) Get(ctx context.Context, ticketTypeID id.TicketTypeID) (*tickettype.TicketType, error) {
	var doc ticketTypeDoc
	err := s.db.Collection(colTicketTypes).FindOne(ctx, bson.M{"_id": ticketTypeID.String()}).Decode(&doc)
	if isNoDocuments(err) {
		return nil, boxoffice.ErrTicketTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromTicketTypeDoc(&doc)
}

func (s ticketTypeStore) GetByCode(ctx context.Context, tenantID, code string) (*tickettype.TicketType, error) {
	var doc ticketTypeDoc
	filter := bson.M{"tenant_id": tenantID, "code": code}
	err := s.db.Collection(colTicketTypes).FindOne(ctx, filter).Decode(&doc)
	if isNoDocuments(err) {
		return nil, boxoffice.ErrTicketTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromTicketTypeDoc(&doc)
}

func (s ticketTypeStore) List(ctx context.Context, tenantID string) ([]*tickettype.TicketType, error) {
	filter := bson.M{}
	if tenantID != "" {
		filter["tenant_id"] = tenantID
	}

	cur, err := s.db.Collection(colTicketTypes).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []*tickettype.TicketType
	for cur.Next(ctx) {
		var doc ticketTypeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		t, err := fromTicketTypeDoc(&doc)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, cur.Err()
}

func (s ticketTypeStore) Update(ctx context.Context, t *tickettype.TicketType) error {
	res, err := s.db.Collection(colTicketTypes).ReplaceOne(ctx, bson.M{"_id": t.ID.String()}, toTicketTypeDoc(t))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return boxoffice.ErrTicketTypeNotFound
	}
	return nil
}

// optionStore adapts Store to the option persistence contract.
type optionStore struct{ *Store }

func (s optionStore) Create(ctx context.Context, o *optionpkg.Option) error {
	_, err := s.db.Collection(colOptions).InsertOne(ctx, toOptionDoc(o))
	if isDuplicateKey(err) {
		return boxoffice.ErrAlreadyExists
	}
	return err
}

func (s optionStore) Get(ctx context.Context, optionID id.OptionID) (*optionpkg.Option, error) {
	var doc optionDoc
	err := s.db.Collection(colOptions).FindOne(ctx, bson.M{"_id": optionID.String()}).Decode(&doc)
	if isNoDocuments(err) {
		return nil, boxoffice.ErrOptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromOptionDoc(&doc)
}

func (s optionStore) List(ctx context.Context, perfID id.PerformanceID, opts optionpkg.ListOpts) ([]*optionpkg.Option, error) {
	filter := bson.M{"performance_id": perfID.String()}
	if opts.ActiveOnly {
		filter["active"] = true
	}

	cur, err := s.db.Collection(colOptions).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []*optionpkg.Option
	for cur.Next(ctx) {
		var doc optionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		o, err := fromOptionDoc(&doc)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, cur.Err()
}

func (s optionStore) Update(ctx context.Context, o *optionpkg.Option) error {
	res, err := s.db.Collection(colOptions).ReplaceOne(ctx, bson.M{"_id": o.ID.String()}, toOptionDoc(o))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return boxoffice.ErrOptionNotFound
	}
	return nil
}
