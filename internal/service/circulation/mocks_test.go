package circulation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/library-backend/internal/domain"
)

var (
	_ readerRepo   = &readerRepoMock{}
	_ bookRepo     = &bookRepoMock{}
	_ lendRepo     = &lendRepoMock{}
	_ returnRepo   = &returnRepoMock{}
	_ ledger       = &ledgerMock{}
	_ auditLogger  = &auditLoggerMock{}
	_ auditHistory = &auditHistoryMock{}
	_ txManager    = &txManagerMock{}
	_ recorder     = &recorderMock{}
)

type readerRepoMock struct {
	GetByCardNoFunc func(ctx context.Context, cardNo string) (domain.Reader, error)

	calls struct {
		GetByCardNo []struct {
			Ctx    context.Context
			CardNo string
		}
	}
	lockGetByCardNo sync.RWMutex
}

func (mock *readerRepoMock) GetByCardNo(ctx context.Context, cardNo string) (domain.Reader, error) {
	if mock.GetByCardNoFunc == nil {
		panic("readerRepoMock.GetByCardNoFunc: method is nil but readerRepo.GetByCardNo was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		CardNo string
	}{Ctx: ctx, CardNo: cardNo}
	mock.lockGetByCardNo.Lock()
	mock.calls.GetByCardNo = append(mock.calls.GetByCardNo, callInfo)
	mock.lockGetByCardNo.Unlock()
	return mock.GetByCardNoFunc(ctx, cardNo)
}

func (mock *readerRepoMock) GetByCardNoCalls() []struct {
	Ctx    context.Context
	CardNo string
} {
	mock.lockGetByCardNo.RLock()
	calls := mock.calls.GetByCardNo
	mock.lockGetByCardNo.RUnlock()
	return calls
}

type bookRepoMock struct {
	GetByISBNFunc func(ctx context.Context, isbn string) (domain.Book, error)

	calls struct {
		GetByISBN []struct {
			Ctx  context.Context
			ISBN string
		}
	}
	lockGetByISBN sync.RWMutex
}

func (mock *bookRepoMock) GetByISBN(ctx context.Context, isbn string) (domain.Book, error) {
	if mock.GetByISBNFunc == nil {
		panic("bookRepoMock.GetByISBNFunc: method is nil but bookRepo.GetByISBN was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		ISBN string
	}{Ctx: ctx, ISBN: isbn}
	mock.lockGetByISBN.Lock()
	mock.calls.GetByISBN = append(mock.calls.GetByISBN, callInfo)
	mock.lockGetByISBN.Unlock()
	return mock.GetByISBNFunc(ctx, isbn)
}

func (mock *bookRepoMock) GetByISBNCalls() []struct {
	Ctx  context.Context
	ISBN string
} {
	mock.lockGetByISBN.RLock()
	calls := mock.calls.GetByISBN
	mock.lockGetByISBN.RUnlock()
	return calls
}

type lendRepoMock struct {
	CreateFunc              func(ctx context.Context, l domain.LendRecord) error
	UpdateStatusFunc        func(ctx context.Context, id uuid.UUID, status domain.LendStatus, now time.Time) error
	LockActiveForReturnFunc func(ctx context.Context, readerID uuid.UUID, bookID uuid.UUID) ([]domain.LendRecord, error)
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (domain.LendRecord, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			L   domain.LendRecord
		}
		UpdateStatus []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Status domain.LendStatus
			Now    time.Time
		}
		LockActiveForReturn []struct {
			Ctx      context.Context
			ReaderID uuid.UUID
			BookID   uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockCreate              sync.RWMutex
	lockUpdateStatus        sync.RWMutex
	lockLockActiveForReturn sync.RWMutex
	lockGetByID             sync.RWMutex
}

func (mock *lendRepoMock) Create(ctx context.Context, l domain.LendRecord) error {
	if mock.CreateFunc == nil {
		panic("lendRepoMock.CreateFunc: method is nil but lendRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   domain.LendRecord
	}{Ctx: ctx, L: l}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, l)
}

func (mock *lendRepoMock) CreateCalls() []struct {
	Ctx context.Context
	L   domain.LendRecord
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *lendRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LendStatus, now time.Time) error {
	if mock.UpdateStatusFunc == nil {
		panic("lendRepoMock.UpdateStatusFunc: method is nil but lendRepo.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Status domain.LendStatus
		Now    time.Time
	}{Ctx: ctx, ID: id, Status: status, Now: now}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, id, status, now)
}

func (mock *lendRepoMock) UpdateStatusCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Status domain.LendStatus
	Now    time.Time
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}

func (mock *lendRepoMock) LockActiveForReturn(ctx context.Context, readerID uuid.UUID, bookID uuid.UUID) ([]domain.LendRecord, error) {
	if mock.LockActiveForReturnFunc == nil {
		panic("lendRepoMock.LockActiveForReturnFunc: method is nil but lendRepo.LockActiveForReturn was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ReaderID uuid.UUID
		BookID   uuid.UUID
	}{Ctx: ctx, ReaderID: readerID, BookID: bookID}
	mock.lockLockActiveForReturn.Lock()
	mock.calls.LockActiveForReturn = append(mock.calls.LockActiveForReturn, callInfo)
	mock.lockLockActiveForReturn.Unlock()
	return mock.LockActiveForReturnFunc(ctx, readerID, bookID)
}

func (mock *lendRepoMock) LockActiveForReturnCalls() []struct {
	Ctx      context.Context
	ReaderID uuid.UUID
	BookID   uuid.UUID
} {
	mock.lockLockActiveForReturn.RLock()
	calls := mock.calls.LockActiveForReturn
	mock.lockLockActiveForReturn.RUnlock()
	return calls
}

func (mock *lendRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.LendRecord, error) {
	if mock.GetByIDFunc == nil {
		panic("lendRepoMock.GetByIDFunc: method is nil but lendRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *lendRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

type returnRepoMock struct {
	CreateFunc     func(ctx context.Context, rr domain.ReturnRecord) error
	ListByLendFunc func(ctx context.Context, lendID uuid.UUID) ([]domain.ReturnRecord, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Rr  domain.ReturnRecord
		}
		ListByLend []struct {
			Ctx    context.Context
			LendID uuid.UUID
		}
	}
	lockCreate     sync.RWMutex
	lockListByLend sync.RWMutex
}

func (mock *returnRepoMock) Create(ctx context.Context, rr domain.ReturnRecord) error {
	if mock.CreateFunc == nil {
		panic("returnRepoMock.CreateFunc: method is nil but returnRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rr  domain.ReturnRecord
	}{Ctx: ctx, Rr: rr}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rr)
}

func (mock *returnRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Rr  domain.ReturnRecord
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *returnRepoMock) ListByLend(ctx context.Context, lendID uuid.UUID) ([]domain.ReturnRecord, error) {
	if mock.ListByLendFunc == nil {
		panic("returnRepoMock.ListByLendFunc: method is nil but returnRepo.ListByLend was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		LendID uuid.UUID
	}{Ctx: ctx, LendID: lendID}
	mock.lockListByLend.Lock()
	mock.calls.ListByLend = append(mock.calls.ListByLend, callInfo)
	mock.lockListByLend.Unlock()
	return mock.ListByLendFunc(ctx, lendID)
}

func (mock *returnRepoMock) ListByLendCalls() []struct {
	Ctx    context.Context
	LendID uuid.UUID
} {
	mock.lockListByLend.RLock()
	calls := mock.calls.ListByLend
	mock.lockListByLend.RUnlock()
	return calls
}

type ledgerMock struct {
	ReserveFunc func(ctx context.Context, bookID uuid.UUID, qty int) error
	ReleaseFunc func(ctx context.Context, bookID uuid.UUID, qty int) error

	calls struct {
		Reserve []struct {
			Ctx    context.Context
			BookID uuid.UUID
			Qty    int
		}
		Release []struct {
			Ctx    context.Context
			BookID uuid.UUID
			Qty    int
		}
	}
	lockReserve sync.RWMutex
	lockRelease sync.RWMutex
}

func (mock *ledgerMock) Reserve(ctx context.Context, bookID uuid.UUID, qty int) error {
	if mock.ReserveFunc == nil {
		panic("ledgerMock.ReserveFunc: method is nil but ledger.Reserve was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		BookID uuid.UUID
		Qty    int
	}{Ctx: ctx, BookID: bookID, Qty: qty}
	mock.lockReserve.Lock()
	mock.calls.Reserve = append(mock.calls.Reserve, callInfo)
	mock.lockReserve.Unlock()
	return mock.ReserveFunc(ctx, bookID, qty)
}

func (mock *ledgerMock) ReserveCalls() []struct {
	Ctx    context.Context
	BookID uuid.UUID
	Qty    int
} {
	mock.lockReserve.RLock()
	calls := mock.calls.Reserve
	mock.lockReserve.RUnlock()
	return calls
}

func (mock *ledgerMock) Release(ctx context.Context, bookID uuid.UUID, qty int) error {
	if mock.ReleaseFunc == nil {
		panic("ledgerMock.ReleaseFunc: method is nil but ledger.Release was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		BookID uuid.UUID
		Qty    int
	}{Ctx: ctx, BookID: bookID, Qty: qty}
	mock.lockRelease.Lock()
	mock.calls.Release = append(mock.calls.Release, callInfo)
	mock.lockRelease.Unlock()
	return mock.ReleaseFunc(ctx, bookID, qty)
}

func (mock *ledgerMock) ReleaseCalls() []struct {
	Ctx    context.Context
	BookID uuid.UUID
	Qty    int
} {
	mock.lockRelease.RLock()
	calls := mock.calls.Release
	mock.lockRelease.RUnlock()
	return calls
}

type auditLoggerMock struct {
	LogFunc func(ctx context.Context, record domain.AuditRecord) error

	calls struct {
		Log []struct {
			Ctx    context.Context
			Record domain.AuditRecord
		}
	}
	lockLog sync.RWMutex
}

func (mock *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	if mock.LogFunc == nil {
		panic("auditLoggerMock.LogFunc: method is nil but auditLogger.Log was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Record domain.AuditRecord
	}{Ctx: ctx, Record: record}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, callInfo)
	mock.lockLog.Unlock()
	return mock.LogFunc(ctx, record)
}

func (mock *auditLoggerMock) LogCalls() []struct {
	Ctx    context.Context
	Record domain.AuditRecord
} {
	mock.lockLog.RLock()
	calls := mock.calls.Log
	mock.lockLog.RUnlock()
	return calls
}

type auditHistoryMock struct {
	GetByEntityFunc func(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)

	calls struct {
		GetByEntity []struct {
			Ctx        context.Context
			EntityType domain.EntityType
			EntityID   uuid.UUID
			Limit      int
		}
	}
	lockGetByEntity sync.RWMutex
}

func (mock *auditHistoryMock) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	if mock.GetByEntityFunc == nil {
		panic("auditHistoryMock.GetByEntityFunc: method is nil but auditHistory.GetByEntity was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		EntityType domain.EntityType
		EntityID   uuid.UUID
		Limit      int
	}{Ctx: ctx, EntityType: entityType, EntityID: entityID, Limit: limit}
	mock.lockGetByEntity.Lock()
	mock.calls.GetByEntity = append(mock.calls.GetByEntity, callInfo)
	mock.lockGetByEntity.Unlock()
	return mock.GetByEntityFunc(ctx, entityType, entityID, limit)
}

func (mock *auditHistoryMock) GetByEntityCalls() []struct {
	Ctx        context.Context
	EntityType domain.EntityType
	EntityID   uuid.UUID
	Limit      int
} {
	mock.lockGetByEntity.RLock()
	calls := mock.calls.GetByEntity
	mock.lockGetByEntity.RUnlock()
	return calls
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

type recorderMock struct {
	ObserveFunc func(op string, qty int, err error)

	calls struct {
		Observe []struct {
			Op  string
			Qty int
			Err error
		}
	}
	lockObserve sync.RWMutex
}

func (mock *recorderMock) Observe(op string, qty int, err error) {
	callInfo := struct {
		Op  string
		Qty int
		Err error
	}{Op: op, Qty: qty, Err: err}
	mock.lockObserve.Lock()
	mock.calls.Observe = append(mock.calls.Observe, callInfo)
	mock.lockObserve.Unlock()
	if mock.ObserveFunc != nil {
		mock.ObserveFunc(op, qty, err)
	}
}

func (mock *recorderMock) ObserveCalls() []struct {
	Op  string
	Qty int
	Err error
} {
	mock.lockObserve.RLock()
	calls := mock.calls.Observe
	mock.lockObserve.RUnlock()
	return calls
}
