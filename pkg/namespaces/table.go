package namespaces

// Namespaces referenced by name elsewhere in the module.
var (
	CommonTypes         = entry("ewp", "architecture/blob/stable-v1/common-types.xsd", "architecture/stable-v1/common-types.xsd", true)
	ManifestV5          = entry("mf5", "api-discovery/tree/stable-v5", "api-discovery/stable-v5/manifest.xsd", false)
	ManifestV6          = entry("mf6", "api-discovery/tree/stable-v6", "api-discovery/stable-v6/manifest.xsd", false)
	Registry            = entry("r", "api-registry/tree/stable-v1", "api-registry/stable-v1/catalogue.xsd", true)
	DiscoveryEntryV5    = entry("d5", "api-discovery/blob/stable-v5/manifest-entry.xsd", "api-discovery/stable-v5/manifest-entry.xsd", false)
	DiscoveryEntryV6    = entry("d6", "api-discovery/blob/stable-v6/manifest-entry.xsd", "api-discovery/stable-v6/manifest-entry.xsd", true)
	EchoEntryV2         = entry("e2", "api-echo/blob/stable-v2/manifest-entry.xsd", "api-echo/stable-v2/manifest-entry.xsd", true)
	RegistryEntry       = entry("r1", "api-registry/blob/stable-v1/manifest-entry.xsd", "api-registry/stable-v1/manifest-entry.xsd", true)
	InstitutionsEntryV2 = entry("in2", "api-institutions/blob/stable-v2/manifest-entry.xsd", "api-institutions/stable-v2/manifest-entry.xsd", true)
)

// table lists every namespace known to the registry, in declaration order.
var table = []Entry{
	// Common types.
	CommonTypes,

	// Top-level documents and API responses.
	ManifestV5,
	ManifestV6,
	Registry,
	entry("er1", "api-echo/tree/stable-v1", "api-echo/stable-v1/response.xsd", false),
	entry("er2", "api-echo/tree/stable-v2", "api-echo/stable-v2/response.xsd", false),
	entry("inr2", "api-institutions/tree/stable-v2", "api-institutions/stable-v2/response.xsd", false),
	entry("cor1", "api-courses/tree/stable-v1", "api-courses/stable-v1/response.xsd", false),
	entry("crr1", "api-course-replication/tree/stable-v1", "api-course-replication/stable-v1/response.xsd", false),
	entry("our2", "api-ounits/tree/stable-v2", "api-ounits/stable-v2/response.xsd", false),
	entry("iari2", "api-iias/blob/stable-v2/endpoints/index-response.xsd", "api-iias/stable-v2/endpoints/index-response.xsd", false),
	entry("iarg2", "api-iias/blob/stable-v2/endpoints/get-response.xsd", "api-iias/stable-v2/endpoints/get-response.xsd", false),
	entry("iari3", "api-iias/blob/stable-v3/endpoints/index-response.xsd", "api-iias/stable-v3/endpoints/index-response.xsd", false),
	entry("iarg3", "api-iias/blob/stable-v3/endpoints/get-response.xsd", "api-iias/stable-v3/endpoints/get-response.xsd", false),
	entry("iari4", "api-iias/blob/stable-v4/endpoints/index-response.xsd", "api-iias/stable-v4/endpoints/index-response.xsd", false),
	entry("iarg4", "api-iias/blob/stable-v4/endpoints/get-response.xsd", "api-iias/stable-v4/endpoints/get-response.xsd", false),
	entry("iari6", "api-iias/blob/stable-v6/endpoints/index-response.xsd", "api-iias/stable-v6/endpoints/index-response.xsd", false),
	entry("iarg6", "api-iias/blob/stable-v6/endpoints/get-response.xsd", "api-iias/stable-v6/endpoints/get-response.xsd", false),
	entry("iari7", "api-iias/blob/stable-v7/endpoints/index-response.xsd", "api-iias/stable-v7/endpoints/index-response.xsd", false),
	entry("iarg7", "api-iias/blob/stable-v7/endpoints/get-response.xsd", "api-iias/stable-v7/endpoints/get-response.xsd", false),
	entry("mtpr1", "api-mt-projects/tree/stable-v1", "api-mt-projects/stable-v1/response.xsd", false),
	entry("mtir1", "api-mt-institutions/tree/stable-v1", "api-mt-institutions/stable-v1/response.xsd", false),
	entry("mtdr1", "api-mt-dictionaries/tree/stable-v1", "api-mt-dictionaries/stable-v1/response.xsd", false),
	entry("img1", "api-imobilities/blob/stable-v1/endpoints/get-response.xsd", "api-imobilities/stable-v1/endpoints/get-response.xsd", false),
	entry("img2", "api-imobilities/blob/stable-v2/endpoints/get-response.xsd", "api-imobilities/stable-v2/endpoints/get-response.xsd", false),
	entry("imtri1", "api-imobility-tors/blob/stable-v1/endpoints/index-response.xsd", "api-imobility-tors/stable-v1/endpoints/index-response.xsd", false),
	entry("imtri2", "api-imobility-tors/blob/stable-v2/endpoints/index-response.xsd", "api-imobility-tors/stable-v2/endpoints/index-response.xsd", false),
	entry("imtrg1", "api-imobility-tors/blob/stable-v1/endpoints/get-response.xsd", "api-imobility-tors/stable-v1/endpoints/get-response.xsd", false),
	entry("imtrg2", "api-imobility-tors/blob/stable-v2/endpoints/get-response.xsd", "api-imobility-tors/stable-v2/endpoints/get-response.xsd", false),
	entry("fr1", "api-factsheet/tree/stable-v1", "api-factsheet/stable-v1/response.xsd", false),
	entry("omri1", "api-omobilities/blob/stable-v1/endpoints/index-response.xsd", "api-omobilities/stable-v1/endpoints/index-response.xsd", false),
	entry("omrg1", "api-omobilities/blob/stable-v1/endpoints/get-response.xsd", "api-omobilities/stable-v1/endpoints/get-response.xsd", false),
	entry("omri2", "api-omobilities/blob/stable-v2/endpoints/index-response.xsd", "api-omobilities/stable-v2/endpoints/index-response.xsd", false),
	entry("omri3", "api-omobilities/blob/stable-v3/endpoints/index-response.xsd", "api-omobilities/stable-v3/endpoints/index-response.xsd", false),
	entry("omrg2", "api-omobilities/blob/stable-v2/endpoints/get-response.xsd", "api-omobilities/stable-v2/endpoints/get-response.xsd", false),
	entry("omrg3", "api-omobilities/blob/stable-v3/endpoints/get-response.xsd", "api-omobilities/stable-v3/endpoints/get-response.xsd", false),
	entry("omsr1", "api-omobility-stats/tree/stable-v1", "api-omobility-stats/stable-v1/endpoints/response.xsd", false),
	entry("omlrg1", "api-omobility-las/blob/stable-v1/endpoints/get-response.xsd", "api-omobility-las/blob/master/get-response.xsd", false),
	entry("omlri1", "api-omobility-las/blob/stable-v1/endpoints/index-response.xsd", "api-omobility-las/blob/master/index-response.xsd", false),
	entry("omlru1", "api-omobility-las/blob/stable-v1/endpoints/update-response.xsd", "api-omobility-las/blob/master/update-response.xsd", false),

	// Manifest API entries.
	DiscoveryEntryV5,
	DiscoveryEntryV6,
	entry("e1", "api-echo/blob/stable-v1/manifest-entry.xsd", "api-echo/stable-v1/manifest-entry.xsd", false),
	EchoEntryV2,
	RegistryEntry,
	entry("in1", "api-institutions/blob/stable-v1/manifest-entry.xsd", "api-institutions/stable-v1/manifest-entry.xsd", false),
	InstitutionsEntryV2,
	entry("ou1", "api-ounits/blob/stable-v1/manifest-entry.xsd", "api-ounits/stable-v1/manifest-entry.xsd", false),
	entry("ou2", "api-ounits/blob/stable-v2/manifest-entry.xsd", "api-ounits/stable-v2/manifest-entry.xsd", true),
	entry("co1", "api-courses/blob/stable-v1/manifest-entry.xsd", "api-courses/master/manifest-entry.xsd", false),
	entry("cr1", "api-course-replication/blob/stable-v1/manifest-entry.xsd", "api-course-replication/master/manifest-entry.xsd", false),
	entry("ia1", "api-iias/blob/stable-v1/manifest-entry.xsd", "api-iias/stable-v1/manifest-entry.xsd", false),
	entry("ia2", "api-iias/blob/stable-v2/manifest-entry.xsd", "api-iias/stable-v2/manifest-entry.xsd", true),
	entry("ia3", "api-iias/blob/stable-v3/manifest-entry.xsd", "api-iias/stable-v3/manifest-entry.xsd", false),
	entry("ia4", "api-iias/blob/stable-v4/manifest-entry.xsd", "api-iias/stable-v4/manifest-entry.xsd", false),
	entry("ia5", "api-iias/blob/stable-v5/manifest-entry.xsd", "api-iias/stable-v5/manifest-entry.xsd", false),
	entry("ia6", "api-iias/blob/stable-v6/manifest-entry.xsd", "api-iias/stable-v6/manifest-entry.xsd", false),
	entry("ia7", "api-iias/blob/stable-v7/manifest-entry.xsd", "api-iias/stable-v7/manifest-entry.xsd", false),
	entry("iac1", "api-iia-cnr/blob/stable-v1/manifest-entry.xsd", "api-iia-cnr/stable-v1/manifest-entry.xsd", false),
	entry("iac2", "api-iia-cnr/blob/stable-v2/manifest-entry.xsd", "api-iia-cnr/stable-v2/manifest-entry.xsd", true),
	entry("iac3", "api-iia-cnr/blob/stable-v3/manifest-entry.xsd", "api-iia-cnr/stable-v3/manifest-entry.xsd", true),
	entry("iaa1", "api-iias-approval/blob/stable-v1/manifest-entry.xsd", "api-iias-approval/master/manifest-entry.xsd", false),
	entry("iaa2", "api-iias-approval/blob/stable-v2/manifest-entry.xsd", "api-iias-approval/stable-v2/manifest-entry.xsd", false),
	entry("iaac1", "api-iia-approval-cnr/blob/stable-v1/manifest-entry.xsd", "api-iia-approval-cnr/master/manifest-entry.xsd", false),
	entry("iaac2", "api-iia-approval-cnr/blob/stable-v2/manifest-entry.xsd", "api-iia-approval-cnr/stable-v2/manifest-entry.xsd", false),
	entry("om1", "api-omobilities/blob/stable-v1/manifest-entry.xsd", "api-omobilities/stable-v1/manifest-entry.xsd", false),
	entry("om2", "api-omobilities/blob/stable-v2/manifest-entry.xsd", "api-omobilities/stable-v2/manifest-entry.xsd", false),
	entry("om3", "api-omobilities/blob/stable-v3/manifest-entry.xsd", "api-omobilities/stable-v3/manifest-entry.xsd", false),
	entry("oml1", "api-omobility-las/blob/stable-v1/manifest-entry.xsd", "api-omobility-las/master/manifest-entry.xsd", false),
	entry("omc1", "api-omobility-cnr/blob/stable-v1/manifest-entry.xsd", "api-omobility-cnr/master/manifest-entry.xsd", false),
	entry("omc2", "api-omobility-cnr/blob/stable-v2/manifest-entry.xsd", "api-omobility-cnr/master/manifest-entry.xsd", false),
	entry("oms1", "api-omobility-stats/blob/stable-v1/manifest-entry.xsd", "api-omobility-stats/master/manifest-entry.xsd", false),
	entry("omlc1", "api-omobility-la-cnr/blob/stable-v1/manifest-entry.xsd", "api-omobility-la-cnr/master/manifest-entry.xsd", false),
	entry("im1", "api-imobilities/blob/stable-v1/manifest-entry.xsd", "api-imobilities/stable-v1/manifest-entry.xsd", false),
	entry("im2", "api-imobilities/blob/stable-v2/manifest-entry.xsd", "api-imobilities/stable-v2/manifest-entry.xsd", false),
	entry("imc1", "api-imobility-cnr/blob/stable-v1/manifest-entry.xsd", "api-imobility-cnr/stable-v1/manifest-entry.xsd", false),
	entry("imc2", "api-imobility-cnr/blob/stable-v2/manifest-entry.xsd", "api-imobility-cnr/stable-v2/manifest-entry.xsd", false),
	entry("imt1", "api-imobility-tors/blob/stable-v1/manifest-entry.xsd", "api-imobility-tors/master/manifest-entry.xsd", false),
	entry("imt2", "api-imobility-tors/blob/stable-v2/manifest-entry.xsd", "api-imobility-tors/master/manifest-entry.xsd", false),
	entry("imtc1", "api-imobility-tor-cnr/blob/stable-v1/manifest-entry.xsd", "api-imobility-tor-cnr/master/manifest-entry.xsd", false),
	entry("mtp1", "api-mt-projects/blob/stable-v1/manifest-entry.xsd", "api-mt-projects/stable-v1/manifest-entry.xsd", false),
	entry("mti1", "api-mt-institutions/blob/stable-v1/manifest-entry.xsd", "api-mt-institutions/stable-v1/manifest-entry.xsd", false),
	entry("mtd1", "api-mt-dictionaries/blob/stable-v1/manifest-entry.xsd", "api-mt-dictionaries/stable-v1/manifest-entry.xsd", false),
	entry("f1", "api-factsheet/blob/stable-v1/manifest-entry.xsd", "api-factsheet/master/manifest-entry.xsd", false),
	entry("file1", "api-file/blob/stable-v1/manifest-entry.xsd", "api-file/master/manifest-entry.xsd", false),

	// Security methods.
	entry("sec", "sec-intro/tree/stable-v2", "sec-intro/stable-v2/schema.xsd", true),

	// Security method entries.
	entry("sec-A0", "sec-cliauth-none/tree/stable-v1", "sec-cliauth-none/stable-v1/security-entries.xsd", true),
	entry("sec-A1", "sec-cliauth-tlscert/tree/stable-v1", "sec-cliauth-tlscert/stable-v1/security-entries.xsd", true),
	entry("sec-A2", "sec-cliauth-httpsig/tree/stable-v1", "sec-cliauth-httpsig/stable-v1/security-entries.xsd", true),
	entry("sec-B1", "sec-srvauth-tlscert/tree/stable-v1", "sec-srvauth-tlscert/stable-v1/security-entries.xsd", true),
	entry("sec-B2", "sec-srvauth-httpsig/tree/stable-v1", "sec-srvauth-httpsig/stable-v1/security-entries.xsd", true),
	entry("sec-C1", "sec-reqencr-tls/tree/stable-v1", "sec-reqencr-tls/stable-v1/security-entries.xsd", true),
	entry("sec-C2", "sec-reqencr-rsa-aes128gcm/tree/stable-v1", "sec-reqencr-rsa-aes128gcm/stable-v1/security-entries.xsd", false),
	entry("sec-D1", "sec-resencr-tls/tree/stable-v1", "sec-resencr-tls/stable-v1/security-entries.xsd", true),
	entry("sec-D2", "sec-resencr-rsa-aes128gcm/tree/stable-v1", "sec-resencr-rsa-aes128gcm/stable-v1/security-entries.xsd", false),
}
