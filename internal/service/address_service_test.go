package service

import (
	"errors"
	"testing"

	"github.com/shopease-next/internal/repository"

	"gorm.io/gorm"
)

func newAddressServiceForTest(db *gorm.DB) *AddressService {
	return NewAddressService(repository.NewAddressRepository(db))
}

func TestAddressCRUDForOwner(t *testing.T) {
	db := setupServiceDB(t)
	svc := newAddressServiceForTest(db)

	user := seedTestUser(t, db, "owner@example.com")

	created, err := svc.Create(user.ID, AddressInput{
		FullName: " Jane Doe ",
		Line1:    "1 Demo Street",
		City:     "Springfield",
		Country:  "US",
	})
	if err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	if created.FullName != "Jane Doe" {
		t.Fatalf("full name want trimmed got %q", created.FullName)
	}

	updated, err := svc.Update(user.ID, created.ID, AddressInput{
		FullName:  "Jane Doe",
		Line1:     "2 Demo Street",
		City:      "Springfield",
		Country:   "US",
		IsDefault: true,
	})
	if err != nil {
		t.Fatalf("update address failed: %v", err)
	}
	if updated.Line1 != "2 Demo Street" || !updated.IsDefault {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	list, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("list addresses failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("addresses want 1 got %d", len(list))
	}

	if err := svc.Delete(user.ID, created.ID); err != nil {
		t.Fatalf("delete address failed: %v", err)
	}
	list, err = svc.List(user.ID)
	if err != nil {
		t.Fatalf("list after delete failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("addresses want 0 got %d", len(list))
	}
}

func TestAddressOwnership(t *testing.T) {
	db := setupServiceDB(t)
	svc := newAddressServiceForTest(db)

	owner := seedTestUser(t, db, "owner@example.com")
	stranger := seedTestUser(t, db, "stranger@example.com")
	address := seedTestAddress(t, db, owner.ID)

	// 他人地址存在但不可操作
	if _, err := svc.Update(stranger.ID, address.ID, AddressInput{FullName: "X"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger update want ErrForbidden got %v", err)
	}
	if err := svc.Delete(stranger.ID, address.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger delete want ErrForbidden got %v", err)
	}

	if _, err := svc.Update(owner.ID, address.ID+99, AddressInput{}); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("missing address want ErrAddressNotFound got %v", err)
	}
}
