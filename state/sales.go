package state

import "libreria-pos/model"

// AddSale appends a sale the store has already persisted.
func (st *State) AddSale(sale model.Sale) {
	st.mu.Lock()
	st.sales = append(st.sales, sale)
	st.mu.Unlock()
}
