package schema

// Built-in definitions for the standard LDAP schema, written in their
// RFC 4512 textual form and parsed at load time. Sources: RFC 4512 (core
// and operational attributes), RFC 4519 (naming attributes and classes),
// RFC 4524 and RFC 2798 (mail, account, inetOrgPerson), RFC 2307 (POSIX).

var builtinSyntaxes = []string{
	`( 1.3.6.1.4.1.1466.115.121.1.3 DESC 'Attribute Type Description' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.6 DESC 'Bit String' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.7 DESC 'Boolean' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.11 DESC 'Country String' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.12 DESC 'DN' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.15 DESC 'Directory String' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.24 DESC 'Generalized Time' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.26 DESC 'IA5 String' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.27 DESC 'INTEGER' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.34 DESC 'Name And Optional UID' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.36 DESC 'Numeric String' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.37 DESC 'Object Class Description' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.38 DESC 'OID' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.40 DESC 'Octet String' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.41 DESC 'Postal Address' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.44 DESC 'Printable String' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.50 DESC 'Telephone Number' )`,
	`( 1.3.6.1.4.1.1466.115.121.1.58 DESC 'Substring Assertion' )`,
	`( 1.3.6.1.1.16.1 DESC 'UUID' )`,
}

var builtinMatchingRules = []string{
	`( 2.5.13.0 NAME 'objectIdentifierMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.38 )`,
	`( 2.5.13.1 NAME 'distinguishedNameMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.12 )`,
	`( 2.5.13.2 NAME 'caseIgnoreMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )`,
	`( 2.5.13.3 NAME 'caseIgnoreOrderingMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )`,
	`( 2.5.13.4 NAME 'caseIgnoreSubstringsMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.58 )`,
	`( 2.5.13.5 NAME 'caseExactMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )`,
	`( 2.5.13.8 NAME 'numericStringMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.36 )`,
	`( 2.5.13.13 NAME 'booleanMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.7 )`,
	`( 2.5.13.14 NAME 'integerMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.27 )`,
	`( 2.5.13.15 NAME 'integerOrderingMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.27 )`,
	`( 2.5.13.16 NAME 'bitStringMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.6 )`,
	`( 2.5.13.17 NAME 'octetStringMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.40 )`,
	`( 2.5.13.20 NAME 'telephoneNumberMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.50 )`,
	`( 2.5.13.21 NAME 'telephoneNumberSubstringsMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.58 )`,
	`( 2.5.13.23 NAME 'uniqueMemberMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.34 )`,
	`( 2.5.13.27 NAME 'generalizedTimeMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.24 )`,
	`( 2.5.13.28 NAME 'generalizedTimeOrderingMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.24 )`,
	`( 1.3.6.1.4.1.1466.109.114.1 NAME 'caseExactIA5Match' SYNTAX 1.3.6.1.4.1.1466.115.121.1.26 )`,
	`( 1.3.6.1.4.1.1466.109.114.2 NAME 'caseIgnoreIA5Match' SYNTAX 1.3.6.1.4.1.1466.115.121.1.26 )`,
	`( 1.3.6.1.4.1.1466.109.114.3 NAME 'caseIgnoreIA5SubstringsMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.58 )`,
	`( 1.3.6.1.1.16.2 NAME 'UUIDMatch' SYNTAX 1.3.6.1.1.16.1 )`,
}

var builtinAttributeTypes = []string{
	// RFC 4512 core
	`( 2.5.4.0 NAME 'objectClass' DESC 'Object class membership' EQUALITY objectIdentifierMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.38 )`,
	`( 2.5.4.1 NAME ( 'aliasedObjectName' 'aliasedEntryName' ) DESC 'Aliased object name' EQUALITY distinguishedNameMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.12 SINGLE-VALUE )`,

	// RFC 4519 naming attributes; most derive their syntax from 'name'
	`( 2.5.4.41 NAME 'name' DESC 'Name' EQUALITY caseIgnoreMatch SUBSTR caseIgnoreSubstringsMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )`,
	`( 2.5.4.3 NAME ( 'cn' 'commonName' ) DESC 'Common name' SUP name )`,
	`( 2.5.4.4 NAME ( 'sn' 'surname' ) DESC 'Surname' SUP name )`,
	`( 2.5.4.6 NAME ( 'c' 'countryName' ) DESC 'Country name' SUP name SINGLE-VALUE )`,
	`( 2.5.4.7 NAME ( 'l' 'localityName' ) DESC 'Locality name' SUP name )`,
	`( 2.5.4.8 NAME ( 'st' 'stateOrProvinceName' ) DESC 'State or province name' SUP name )`,
	`( 2.5.4.9 NAME ( 'street' 'streetAddress' ) DESC 'Street address' EQUALITY caseIgnoreMatch SUBSTR caseIgnoreSubstringsMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )`,
	`( 2.5.4.10 NAME ( 'o' 'organizationName' ) DESC 'Organization name' SUP name )`,
	`( 2.5.4.11 NAME ( 'ou' 'organizationalUnitName' ) DESC 'Organizational unit name' SUP name )`,
	`( 2.5.4.12 NAME 'title' DESC 'Title' SUP name )`,
	`( 2.5.4.13 NAME 'description' DESC 'Description' EQUALITY caseIgnoreMatch SUBSTR caseIgnoreSubstringsMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )`,
	`( 2.5.4.42 NAME ( 'givenName' 'gn' ) DESC 'Given name' SUP name )`,
	`( 2.5.4.43 NAME 'initials' DESC 'Initials' SUP name )`,

	// RFC 4519 misc user attributes
	`( 2.5.4.20 NAME 'telephoneNumber' DESC 'Telephone number' EQUALITY telephoneNumberMatch SUBSTR telephoneNumberSubstringsMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.50 )`,
	`( 2.5.4.35 NAME 'userPassword' DESC 'User password' EQUALITY octetStringMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.40 )`,
	`( 2.5.4.49 NAME 'distinguishedName' DESC 'Distinguished name' EQUALITY distinguishedNameMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.12 )`,
	`( 2.5.4.31 NAME 'member' DESC 'Member' SUP distinguishedName )`,
	`( 2.5.4.50 NAME 'uniqueMember' DESC 'Unique member' EQUALITY uniqueMemberMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.34 )`,
	`( 2.5.4.34 NAME 'seeAlso' DESC 'See also' SUP distinguishedName )`,
	`( 0.9.2342.19200300.100.1.25 NAME ( 'dc' 'domainComponent' ) DESC 'Domain component' EQUALITY caseIgnoreIA5Match SUBSTR caseIgnoreIA5SubstringsMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.26 SINGLE-VALUE )`,
	`( 0.9.2342.19200300.100.1.1 NAME ( 'uid' 'userid' ) DESC 'User ID' EQUALITY caseIgnoreMatch SUBSTR caseIgnoreSubstringsMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )`,
	`( 0.9.2342.19200300.100.1.3 NAME ( 'mail' 'rfc822Mailbox' ) DESC 'Email address' EQUALITY caseIgnoreIA5Match SUBSTR caseIgnoreIA5SubstringsMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.26 )`,

	// RFC 4512 operational attributes
	`( 2.5.18.1 NAME 'createTimestamp' DESC 'Creation timestamp' EQUALITY generalizedTimeMatch ORDERING generalizedTimeOrderingMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.24 SINGLE-VALUE NO-USER-MODIFICATION USAGE directoryOperation )`,
	`( 2.5.18.2 NAME 'modifyTimestamp' DESC 'Modification timestamp' EQUALITY generalizedTimeMatch ORDERING generalizedTimeOrderingMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.24 SINGLE-VALUE NO-USER-MODIFICATION USAGE directoryOperation )`,
	`( 2.5.18.3 NAME 'creatorsName' DESC 'Creators name' EQUALITY distinguishedNameMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.12 SINGLE-VALUE NO-USER-MODIFICATION USAGE directoryOperation )`,
	`( 2.5.18.4 NAME 'modifiersName' DESC 'Modifiers name' EQUALITY distinguishedNameMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.12 SINGLE-VALUE NO-USER-MODIFICATION USAGE directoryOperation )`,
	`( 2.5.18.10 NAME 'subschemaSubentry' DESC 'Subschema subentry' EQUALITY distinguishedNameMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.12 SINGLE-VALUE NO-USER-MODIFICATION USAGE directoryOperation )`,
	`( 2.5.21.9 NAME 'structuralObjectClass' DESC 'Structural object class' EQUALITY objectIdentifierMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.38 SINGLE-VALUE NO-USER-MODIFICATION USAGE directoryOperation )`,
	`( 1.3.6.1.1.20 NAME 'entryDN' DESC 'Entry DN' EQUALITY distinguishedNameMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.12 SINGLE-VALUE NO-USER-MODIFICATION USAGE directoryOperation )`,
	`( 1.3.6.1.1.16.4 NAME 'entryUUID' DESC 'Entry UUID' EQUALITY UUIDMatch SYNTAX 1.3.6.1.1.16.1 SINGLE-VALUE NO-USER-MODIFICATION USAGE directoryOperation )`,
	`( 2.5.21.8 NAME 'hasSubordinates' DESC 'Has subordinates' EQUALITY booleanMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.7 SINGLE-VALUE NO-USER-MODIFICATION USAGE directoryOperation )`,
}

var builtinObjectClasses = []string{
	// RFC 4512 core
	`( 2.5.6.0 NAME 'top' DESC 'Top of the object class hierarchy' ABSTRACT MUST objectClass )`,
	`( 2.5.6.1 NAME 'alias' DESC 'Alias object class' SUP top STRUCTURAL MUST aliasedObjectName )`,

	// RFC 4519
	`( 2.5.6.2 NAME 'country' DESC 'Country' SUP top STRUCTURAL MUST c MAY description )`,
	`( 2.5.6.3 NAME 'locality' DESC 'Locality' SUP top STRUCTURAL MAY ( street $ seeAlso $ st $ l $ description ) )`,
	`( 2.5.6.4 NAME 'organization' DESC 'Organization' SUP top STRUCTURAL MUST o MAY ( userPassword $ seeAlso $ telephoneNumber $ street $ st $ l $ description ) )`,
	`( 2.5.6.5 NAME 'organizationalUnit' DESC 'Organizational unit' SUP top STRUCTURAL MUST ou MAY ( userPassword $ seeAlso $ telephoneNumber $ street $ st $ l $ description ) )`,
	`( 2.5.6.6 NAME 'person' DESC 'Person' SUP top STRUCTURAL MUST ( sn $ cn ) MAY ( userPassword $ telephoneNumber $ seeAlso $ description ) )`,
	`( 2.5.6.7 NAME 'organizationalPerson' DESC 'Organizational person' SUP person STRUCTURAL MAY ( title $ telephoneNumber $ street $ ou $ st $ l ) )`,
	`( 2.5.6.9 NAME 'groupOfNames' DESC 'Group of names' SUP top STRUCTURAL MUST ( member $ cn ) MAY ( seeAlso $ ou $ o $ description ) )`,
	`( 2.5.6.17 NAME 'groupOfUniqueNames' DESC 'Group of unique names' SUP top STRUCTURAL MUST ( uniqueMember $ cn ) MAY ( seeAlso $ ou $ o $ description ) )`,
	`( 0.9.2342.19200300.100.4.13 NAME 'domain' DESC 'Domain' SUP top STRUCTURAL MUST dc MAY ( userPassword $ seeAlso $ telephoneNumber $ street $ st $ l $ description $ o ) )`,
	`( 1.3.6.1.4.1.1466.344 NAME 'dcObject' DESC 'Domain component object' SUP top AUXILIARY MUST dc )`,

	// RFC 2798
	`( 2.16.840.1.113730.3.2.2 NAME 'inetOrgPerson' DESC 'Internet organizational person' SUP organizationalPerson STRUCTURAL MAY ( displayName $ employeeNumber $ givenName $ initials $ mail $ mobile $ o $ uid ) )`,

	// RFC 4524
	`( 0.9.2342.19200300.100.4.5 NAME 'account' DESC 'Account' SUP top STRUCTURAL MUST uid MAY ( description $ seeAlso $ l $ o $ ou ) )`,
	`( 0.9.2342.19200300.100.4.19 NAME 'simpleSecurityObject' DESC 'Simple security object' SUP top AUXILIARY MUST userPassword )`,

	// RFC 2307
	`( 1.3.6.1.1.1.2.0 NAME 'posixAccount' DESC 'POSIX account' SUP top AUXILIARY MUST ( cn $ uid $ uidNumber $ gidNumber $ homeDirectory ) MAY ( userPassword $ loginShell $ gecos $ description ) )`,
	`( 1.3.6.1.1.1.2.2 NAME 'posixGroup' DESC 'POSIX group' SUP top STRUCTURAL MUST ( cn $ gidNumber ) MAY ( userPassword $ memberUid $ description ) )`,
}

// LoadDefaultSchema parses the built-in definition tables into a fresh
// Schema. The tables are compile-time constants, so parse failures cannot
// occur outside of editing them; a definition that fails anyway is
// skipped rather than taking the whole registry down.
func LoadDefaultSchema() *Schema {
	s := NewSchema()
	for _, def := range builtinSyntaxes {
		if syn, err := parseSyntax(def); err == nil {
			s.AddSyntax(syn)
		}
	}
	for _, def := range builtinMatchingRules {
		if mr, err := parseMatchingRule(def); err == nil {
			s.AddRule(mr)
		}
	}
	for _, def := range builtinAttributeTypes {
		if at, err := parseAttributeType(def); err == nil {
			s.AddAttribute(at)
		}
	}
	for _, def := range builtinObjectClasses {
		if oc, err := parseObjectClass(def); err == nil {
			s.AddClass(oc)
		}
	}
	return s
}
