package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/xraph/boxoffice"
	"github.com/xraph/boxoffice/id"
	"github.com/xraph/boxoffice/section"
)

// sectionStore adapts Store to the section persistence contract.
type sectionStore struct{ *Store }

func (s sectionStore) Create(ctx context.Context, sec *section.Section) error {
	_, err := s.db.Collection(colSections).InsertOne(ctx, toSectionDoc(sec))
	if isDuplicateKey(err) {
		return boxoffice.ErrSectionExists
	}
	return err
}

func (s sectionStore) Get(ctx context.Context, sectionID id.SectionID) (*section.Section, error) {
	var doc sectionDoc
	err := s.db.Collection(colSections).FindOne(ctx, bson.M{"_id": sectionID.String()}).Decode(&doc)
	if isNoDocuments(err) {
		return nil, boxoffice.ErrSectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromSectionDoc(&doc)
}

func (s sectionStore) GetByName(ctx context.Context, perfID id.PerformanceID, name string) (*section.Section, error) {
	var doc sectionDoc
	filter := bson.M{"performance_id": perfID.String(), "name": name}
	err := s.db.Collection(colSections).FindOne(ctx, filter).Decode(&doc)
	if isNoDocuments(err) {
		return nil, boxoffice.ErrSectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromSectionDoc(&doc)
}

func (s sectionStore) List(ctx context.Context, perfID id.PerformanceID) ([]*section.Section, error) {
	cur, err := s.db.Collection(colSections).Find(ctx, bson.M{"performance_id": perfID.String()})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []*section.Section
	for cur.Next(ctx) {
		var doc sectionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		sec, err := fromSectionDoc(&doc)
		if err != nil {
			return nil, err
		}
		result = append(result, sec)
	}
	return result, cur.Err()
}

func (s sectionStore) Update(ctx context.Context, sec *section.Section) error {
	res, err := s.db.Collection(colSections).ReplaceOne(ctx, bson.M{"_id": sec.ID.String()}, toSectionDoc(sec))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return boxoffice.ErrSectionNotFound
	}
	return nil
}

func (s sectionStore) CreateAllocation(ctx context.Context, a *section.SectionTicketType) error {
	_, err := s.db.Collection(colAllocations).InsertOne(ctx, toAllocationDoc(a))
	if isDuplicateKey(err) {
		return boxoffice.ErrAllocationExists
	}
	return err
}

func (s sectionStore) GetAllocation(ctx context.Context, sectionID id.SectionID, ticketTypeID id.TicketTypeID) (*section.SectionTicketType, error) {
	var doc allocationDoc
	filter := bson.M{"section_id": sectionID.String(), "ticket_type_id": ticketTypeID.String()}
	err := s.db.Collection(colAllocations).FindOne(ctx, filter).Decode(&doc)
	if isNoDocuments(err) {
		return nil, boxoffice.ErrAllocationNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromAllocationDoc(&doc)
}

func (s sectionStore) ListAllocations(ctx context.Context, sectionID id.SectionID) ([]*section.SectionTicketType, error) {
	cur, err := s.db.Collection(colAllocations).Find(ctx, bson.M{"section_id": sectionID.String()})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []*section.SectionTicketType
	for cur.Next(ctx) {
		var doc allocationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		a, err := fromAllocationDoc(&doc)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, cur.Err()
}

// UpdatePair commits a section and one of its allocations inside one
// multi-document transaction.
func (s sectionStore) UpdatePair(ctx context.Context, sec *section.Section, a *section.SectionTicketType) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		res, err := s.db.Collection(colSections).ReplaceOne(ctx, bson.M{"_id": sec.ID.String()}, toSectionDoc(sec))
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, boxoffice.ErrSectionNotFound
		}

		res, err = s.db.Collection(colAllocations).ReplaceOne(ctx, bson.M{"_id": a.ID.String()}, toAllocationDoc(a))
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, boxoffice.ErrAllocationNotFound
		}
		return nil, nil
	})
	return err
}
