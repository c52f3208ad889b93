package usecase

import "marketplace/internal/domain/model"

// 注文で要求された商品と数量
type OrderProductInput struct {
	ID       string `json:"id"`
	Quantity int64  `json:"quantity"`
}

// BuildOrderCart は在庫と要求を突き合わせてカート明細を作る。
//
// 在庫の並び順（検索結果の順）で処理する。要求されていない在庫は無視し、
// 在庫に無い要求も黙って落とす。数量が足りない商品が1つでもあれば
// InsufficientStockErrorを返し、カートも在庫も返さない。
// 返す在庫は呼び出し元のスライスのコピーで、予約分だけ減っている。
func BuildOrderCart(requested []OrderProductInput, stocks []model.Product) ([]model.OrderLineItem, []model.Product, error) {
	if len(stocks) == 0 && len(requested) > 0 {
		return nil, nil, NewNotFoundError(msgProductsNotFound)
	}

	//同じidが複数あれば最初のものを使う
	wanted := make(map[string]int64, len(requested))
	for _, r := range requested {
		if _, ok := wanted[r.ID]; !ok {
			wanted[r.ID] = r.Quantity
		}
	}

	snapshot := make([]model.Product, len(stocks))
	copy(snapshot, stocks)

	cart := make([]model.OrderLineItem, 0, len(requested))
	for i := range snapshot {
		stock := &snapshot[i]

		qty, ok := wanted[stock.ID]
		if !ok {
			continue
		}
		if qty > stock.Quantity {
			return nil, nil, &InsufficientStockError{
				ProductID: stock.ID,
				Requested: qty,
				Available: stock.Quantity,
			}
		}

		cart = append(cart, model.OrderLineItem{
			ProductID: stock.ID,
			Price:     stock.Price,
			Quantity:  qty,
		})
		stock.Quantity -= qty
	}

	return cart, snapshot, nil
}

// 重複を除いたidを要求順で返す
func distinctProductIDs(requested []OrderProductInput) []string {
	seen := make(map[string]struct{}, len(requested))
	ids := make([]string, 0, len(requested))
	for _, r := range requested {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		ids = append(ids, r.ID)
	}
	return ids
}
