// Package memory はDBなしで動くリポジトリ実装（ローカル開発・テスト用）。
package memory

import (
	"context"
	"sync"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type state struct {
	customers  map[string]model.Customer
	products   map[string]model.Product
	productIDs []string // 作成順
	orders     map[string]model.Order
}

func newState() state {
	return state{
		customers: make(map[string]model.Customer),
		products:  make(map[string]model.Product),
		orders:    make(map[string]model.Order),
	}
}

// 保存済みの注文は書き換えないので、明細スライスは共有してよい
func (s state) clone() state {
	c := newState()
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	c.productIDs = append([]string(nil), s.productIDs...)
	for k, v := range s.orders {
		c.orders[k] = v
	}
	return c
}

// Store は全リポジトリが共有する状態。
// トランザクションはmuで直列化し、失敗時はスナップショットに戻す。
type Store struct {
	mu  sync.Mutex
	st  state
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		st:  newState(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// トランザクション外で使うリポジトリ（1操作ごとにロック）
func (s *Store) Customers() repo.CustomerRepository {
	return &customerRepository{s: s}
}

func (s *Store) Products() repo.ProductRepository {
	return &productRepository{s: s}
}

func (s *Store) Orders() repo.OrderRepository {
	return &orderRepository{s: s}
}

// lockはトランザクション外の呼び出しだけロックを取る
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type txRepos struct {
	customers *customerRepository
	products  *productRepository
	orders    *orderRepository
}

func (r *txRepos) Customers() repo.CustomerRepository { return r.customers }
func (r *txRepos) Products() repo.ProductRepository   { return r.products }
func (r *txRepos) Orders() repo.OrderRepository       { return r.orders }

type TxManager struct {
	s *Store
}

func NewTxManager(s *Store) *TxManager {
	return &TxManager{s: s}
}

func (tm *TxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.s.mu.Lock()
	defer tm.s.mu.Unlock()

	snapshot := tm.s.st.clone()
	r := &txRepos{
		customers: &customerRepository{s: tm.s, inTx: true},
		products:  &productRepository{s: tm.s, inTx: true},
		orders:    &orderRepository{s: tm.s, inTx: true},
	}
	if err := fn(r); err != nil {
		//rollback
		tm.s.st = snapshot
		return err
	}
	return nil
}

var _ repo.TransactionManager = (*TxManager)(nil)
