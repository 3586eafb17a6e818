// Package ledger holds the pure computations behind the financial statements:
// the account hierarchy, the balance engine, the statement assemblers, the ledger
// book and entry numbering. Nothing in this package performs I/O.
package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// Hierarchy is an immutable forest of accounts, grouped by type and then by parent.
type Hierarchy struct {
	accounts map[string]domain.Account
	byCode   map[string]string
	children map[string][]string // parent ID -> child IDs ordered by code
	roots    map[domain.AccountType][]string
}

// NewHierarchy builds the forest from a flat list of accounts of one organization.
func NewHierarchy(accounts []domain.Account) (*Hierarchy, error) {
	h := &Hierarchy{
		accounts: make(map[string]domain.Account, len(accounts)),
		byCode:   make(map[string]string, len(accounts)),
		children: make(map[string][]string),
		roots:    make(map[domain.AccountType][]string),
	}

	for _, acc := range accounts {
		if _, dup := h.accounts[acc.AccountID]; dup {
			return nil, apperrors.NewValidationError("accountID", acc.AccountID, "duplicate account in hierarchy")
		}
		if !acc.AccountType.IsValid() {
			return nil, apperrors.NewValidationError("accountType", string(acc.AccountType), "unknown account type")
		}
		h.accounts[acc.AccountID] = acc
		if acc.Code != "" {
			h.byCode[acc.Code] = acc.AccountID
		}
	}

	for _, acc := range accounts {
		if acc.ParentAccountID == "" {
			continue
		}
		if _, ok := h.accounts[acc.ParentAccountID]; !ok {
			return nil, fmt.Errorf("parent of account %s: %w", acc.AccountID, apperrors.NewNotFoundError("account", acc.ParentAccountID))
		}
		h.children[acc.ParentAccountID] = append(h.children[acc.ParentAccountID], acc.AccountID)
	}

	for _, acc := range accounts {
		if err := h.checkCycle(acc.AccountID); err != nil {
			return nil, err
		}
		// Accounts whose parent has another type start a tree of their own type.
		if acc.ParentAccountID == "" || h.accounts[acc.ParentAccountID].AccountType != acc.AccountType {
			h.roots[acc.AccountType] = append(h.roots[acc.AccountType], acc.AccountID)
		}
	}

	for parent := range h.children {
		h.sortByCode(h.children[parent])
	}
	for t := range h.roots {
		h.sortByCode(h.roots[t])
	}
	return h, nil
}

func (h *Hierarchy) checkCycle(id string) error {
	seen := map[string]bool{id: true}
	for cur := h.accounts[id].ParentAccountID; cur != ""; cur = h.accounts[cur].ParentAccountID {
		if seen[cur] {
			return apperrors.NewValidationError("parentAccountID", id, "account hierarchy contains a cycle")
		}
		seen[cur] = true
	}
	return nil
}

func (h *Hierarchy) sortByCode(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		return CompareCodes(h.accounts[ids[i]].Code, h.accounts[ids[j]].Code) < 0
	})
}

// Account returns the account with the given ID.
func (h *Hierarchy) Account(id string) (domain.Account, bool) {
	acc, ok := h.accounts[id]
	return acc, ok
}

// TypeOf returns the type of the account with the given ID.
func (h *Hierarchy) TypeOf(id string) (domain.AccountType, bool) {
	acc, ok := h.accounts[id]
	return acc.AccountType, ok
}

// ByCode finds an account by its code.
func (h *Hierarchy) ByCode(code string) (domain.Account, bool) {
	id, ok := h.byCode[code]
	if !ok {
		return domain.Account{}, false
	}
	return h.accounts[id], true
}

// ByName finds accounts whose name matches case-insensitively.
func (h *Hierarchy) ByName(name string) []domain.Account {
	var out []domain.Account
	for _, t := range domain.AccountTypes {
		h.walk(h.roots[t], func(acc domain.Account) {
			if strings.EqualFold(strings.TrimSpace(acc.Name), strings.TrimSpace(name)) {
				out = append(out, acc)
			}
		})
	}
	return out
}

// Len is the number of accounts in the hierarchy.
func (h *Hierarchy) Len() int { return len(h.accounts) }

// Roots returns the top-level accounts of a type, ordered by code.
func (h *Hierarchy) Roots(t domain.AccountType) []domain.Account {
	return h.resolve(h.roots[t])
}

// Children returns the direct children of accountID that have type t. An empty
// accountID returns the roots of type t.
func (h *Hierarchy) Children(accountID string, t domain.AccountType) []domain.Account {
	if accountID == "" {
		return h.Roots(t)
	}
	var out []domain.Account
	for _, id := range h.children[accountID] {
		if acc := h.accounts[id]; acc.AccountType == t {
			out = append(out, acc)
		}
	}
	return out
}

// Subtree returns accountID followed by all of its descendants, depth-first.
func (h *Hierarchy) Subtree(accountID string) []domain.Account {
	if _, ok := h.accounts[accountID]; !ok {
		return nil
	}
	var out []domain.Account
	var visit func(id string)
	visit = func(id string) {
		out = append(out, h.accounts[id])
		for _, child := range h.children[id] {
			visit(child)
		}
	}
	visit(accountID)
	return out
}

// IsDescendant reports whether candidate sits anywhere below ancestor.
func (h *Hierarchy) IsDescendant(candidate, ancestor string) bool {
	if candidate == ancestor {
		return false
	}
	for cur := h.accounts[candidate].ParentAccountID; cur != ""; cur = h.accounts[cur].ParentAccountID {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// Ancestors returns the chain of parents of accountID, nearest first.
func (h *Hierarchy) Ancestors(accountID string) []domain.Account {
	var out []domain.Account
	for cur := h.accounts[accountID].ParentAccountID; cur != ""; cur = h.accounts[cur].ParentAccountID {
		out = append(out, h.accounts[cur])
	}
	return out
}

// SubtreeTotal is the own balance of accountID plus the totals of all its descendants.
func (h *Hierarchy) SubtreeTotal(accountID string, balances Balances) domain.Money {
	total := domain.ZeroMoney
	for _, acc := range h.Subtree(accountID) {
		total = total.Add(balances.Get(acc.AccountID))
	}
	return total
}

// TreeOptions controls how a statement tree is rendered. Options never change totals.
type TreeOptions struct {
	PruneZero bool // drop zero leaves without non-zero descendants
	Flat      bool // render the tree depth-first as a flat list
}

// Tree renders the accounts of type t with own balances and subtree totals.
func (h *Hierarchy) Tree(t domain.AccountType, balances Balances, opts TreeOptions) ([]domain.ReportNode, domain.Money) {
	total := domain.ZeroMoney
	nodes := make([]domain.ReportNode, 0, len(h.roots[t]))
	for _, id := range h.roots[t] {
		node, keep := h.buildNode(id, t, 0, balances, opts)
		total = total.Add(node.Total)
		if keep {
			nodes = append(nodes, node)
		}
	}
	if opts.Flat {
		nodes = flatten(nodes)
	}
	return nodes, total
}

func (h *Hierarchy) buildNode(id string, t domain.AccountType, depth int, balances Balances, opts TreeOptions) (domain.ReportNode, bool) {
	acc := h.accounts[id]
	node := domain.ReportNode{
		AccountID:   acc.AccountID,
		Code:        acc.Code,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		Depth:       depth,
		OwnBalance:  balances.Get(id),
	}
	node.Total = node.OwnBalance

	nonZeroBelow := false
	for _, childID := range h.children[id] {
		if h.accounts[childID].AccountType != t {
			continue
		}
		child, keep := h.buildNode(childID, t, depth+1, balances, opts)
		node.Total = node.Total.Add(child.Total)
		if keep {
			node.Children = append(node.Children, child)
			nonZeroBelow = true
		}
	}

	keep := !opts.PruneZero || !node.OwnBalance.IsZero() || nonZeroBelow
	return node, keep
}

func flatten(nodes []domain.ReportNode) []domain.ReportNode {
	var out []domain.ReportNode
	for _, n := range nodes {
		children := n.Children
		n.Children = nil
		out = append(out, n)
		out = append(out, flatten(children)...)
	}
	return out
}

func (h *Hierarchy) walk(ids []string, fn func(domain.Account)) {
	for _, id := range ids {
		fn(h.accounts[id])
		var sameType []string
		for _, child := range h.children[id] {
			if h.accounts[child].AccountType == h.accounts[id].AccountType {
				sameType = append(sameType, child)
			}
		}
		h.walk(sameType, fn)
	}
}

func (h *Hierarchy) resolve(ids []string) []domain.Account {
	out := make([]domain.Account, 0, len(ids))
	for _, id := range ids {
		out = append(out, h.accounts[id])
	}
	return out
}

// CompareCodes orders account codes numerically when both are numeric and
// lexicographically otherwise.
func CompareCodes(a, b string) int {
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
		if len(ta) != len(tb) {
			if len(ta) < len(tb) {
				return -1
			}
			return 1
		}
		return strings.Compare(ta, tb)
	}
	return strings.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
