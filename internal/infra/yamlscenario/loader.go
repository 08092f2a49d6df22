package yamlscenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

type Loader struct {
	scenariosDir string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{scenariosDir: "scenarios"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithScenariosDir(dir string) Option {
	return func(l *Loader) {
		if strings.TrimSpace(dir) != "" {
			l.scenariosDir = dir
		}
	}
}

var _ ports.ScenarioLoader = (*Loader)(nil)

func (l *Loader) LoadScenario(path string) (domain.Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Scenario{}, &domain.OpError{
			Op:   "yamlscenario.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var ys yamlScenario
	if err := yaml.Unmarshal(b, &ys); err != nil {
		return domain.Scenario{}, &domain.OpError{
			Op:   "yamlscenario.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, ys)
}

func (l *Loader) ListScenarios(root string) ([]domain.ScenarioRef, error) {
	dir := filepath.Join(root, l.scenariosDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlscenario.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.ScenarioRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		p := filepath.Join(dir, name)
		n, _ := readScenarioName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}

		refs = append(refs, domain.ScenarioRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readScenarioName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

type yamlScenario struct {
	Name         string            `yaml:"name"`
	Transactions []yamlTransaction `yaml:"transactions"`
}

type yamlTransaction struct {
	Name     string       `yaml:"name"`
	Customer yamlCustomer `yaml:"customer"`
	Payment  yamlPayment  `yaml:"payment"`
}

type yamlCustomer struct {
	Name  string `yaml:"name"`
	ID    string `yaml:"id"`
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

// Amount is a string so YAML floats never round the value.
type yamlPayment struct {
	Amount   string `yaml:"amount"`
	Currency string `yaml:"currency"`
	Type     string `yaml:"type"`
	Source   string `yaml:"source"`
}

// mapAndValidate rejects malformed data at load time. An empty customer id is
// accepted here so the validator chain can reject it at run time.
func mapAndValidate(path string, ys yamlScenario) (domain.Scenario, error) {
	if strings.TrimSpace(ys.Name) == "" {
		return domain.Scenario{}, invalidField(path, "name", "scenario name is required")
	}
	if len(ys.Transactions) == 0 {
		return domain.Scenario{}, invalidField(path, "transactions", "at least one transaction is required")
	}

	sc := domain.Scenario{
		Name:         ys.Name,
		Transactions: make([]domain.ScenarioTransaction, 0, len(ys.Transactions)),
	}

	for i, tx := range ys.Transactions {
		prefix := fmt.Sprintf("transactions[%d]", i)

		name := strings.TrimSpace(tx.Name)
		if name == "" {
			name = fmt.Sprintf("transaction %d", i+1)
		}

		customer, err := domain.NewCustomerData(tx.Customer.Name, tx.Customer.ID, domain.ContactInfo{
			Email: tx.Customer.Email,
			Phone: tx.Customer.Phone,
		})
		if err != nil {
			return domain.Scenario{}, invalidField(path, prefix+".customer", err.Error())
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(tx.Payment.Amount))
		if err != nil {
			return domain.Scenario{}, invalidField(path, prefix+".payment.amount", fmt.Sprintf("invalid amount %q", tx.Payment.Amount))
		}

		typ, err := domain.ParsePaymentType(tx.Payment.Type)
		if err != nil {
			return domain.Scenario{}, invalidField(path, prefix+".payment.type", err.Error())
		}

		payment, err := domain.NewPaymentData(amount, tx.Payment.Currency, typ, tx.Payment.Source)
		if err != nil {
			return domain.Scenario{}, invalidField(path, prefix+".payment", err.Error())
		}

		sc.Transactions = append(sc.Transactions, domain.ScenarioTransaction{
			Name:     name,
			Customer: customer,
			Payment:  payment,
		})
	}

	return sc, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlscenario.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
