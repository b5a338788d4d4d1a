// Package schemafile loads rulekit schemas from YAML files.
//
// Each file declares one schema. Rules are referenced by builder name and
// positional arguments and resolved through a Registry, which knows every
// validator rule and, once UseRedis or UsePostgres is called, the lookup
// rules as well. Rule order inside a field is the order of the list, and
// it is the order of the reported failures.
//
// DecodeDocument turns a JSON or YAML payload into the rulekit.Object that
// the schema evaluates.
package schemafile
